package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceElectron/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// cfg is loaded before any subcommand runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ote",
	Short: "OpenTraceElectron - schematic scheme tools",
	Long: `OpenTraceElectron (ote) works with .esch scheme files:
  - inspect a scheme and its element tree
  - rotate or reflect a named element
  - check and reformat primitive image records
  - export PNG previews
  - keep schemes in a local SQLite library

Examples:
  ote scheme tree amp.esch                 # Print the element tree
  ote element rotate amp.esch U1 -a 90     # Rotate U1 in place
  ote image fmt symbol.img                 # Normalize a record stream
  ote export png amp.esch -o amp.png       # Render a preview
  ote lib put amp amp.esch                 # Store in the library`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			if path, err = config.DefaultPath(); err != nil {
				return fmt.Errorf("config path: %w", err)
			}
		}
		c, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		if verbose {
			log.Printf("ote: config %s (theme=%s, library=%s)", path, cfg.Theme, cfg.LibraryPath)
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/opentraceelectron/config.yaml)")
}
