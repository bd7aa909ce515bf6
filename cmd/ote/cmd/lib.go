package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceElectron/pkg/scheme"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/scheme/store"
)

var (
	libPath   string
	libOutput string
)

var libCmd = &cobra.Command{
	Use:   "lib",
	Short: "Scheme library operations",
	Long:  `Store, fetch and list schemes in the SQLite library (library_path in the config).`,
}

var libPutCmd = &cobra.Command{
	Use:   "put <name> <file>",
	Short: "Store a scheme file under name",
	Args:  cobra.ExactArgs(2),
	RunE:  runLibPut,
}

var libGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Write a stored scheme to a file or stdout",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibGet,
}

var libListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List stored schemes",
	Args:    cobra.NoArgs,
	RunE:    runLibList,
}

var libRemoveCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"remove"},
	Short:   "Delete a stored scheme",
	Args:    cobra.ExactArgs(1),
	RunE:    runLibRemove,
}

func init() {
	rootCmd.AddCommand(libCmd)
	libCmd.AddCommand(libPutCmd, libGetCmd, libListCmd, libRemoveCmd)

	libCmd.PersistentFlags().StringVar(&libPath, "db", "", "library database (default from config)")
	libGetCmd.Flags().StringVarP(&libOutput, "output", "o", "", "write to file instead of stdout")
}

func openLibrary(ctx context.Context) (*store.Store, error) {
	path := libPath
	if path == "" {
		path = cfg.LibraryPath
	}
	return store.Open(ctx, path)
}

func runLibPut(cmd *cobra.Command, args []string) error {
	t, err := scheme.ParseFile(args[1])
	if err != nil {
		return fmt.Errorf("error parsing scheme: %w", err)
	}

	lib, err := openLibrary(cmd.Context())
	if err != nil {
		return err
	}
	defer lib.Close()

	if err := lib.Put(cmd.Context(), args[0], t); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Stored %s (%d elements)\n", args[0], t.Len())
	return nil
}

func runLibGet(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary(cmd.Context())
	if err != nil {
		return err
	}
	defer lib.Close()

	t, err := lib.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if libOutput == "" {
		return scheme.Write(cmd.OutOrStdout(), t)
	}
	if err := scheme.WriteFile(libOutput, t); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", libOutput)
	return nil
}

func runLibList(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary(cmd.Context())
	if err != nil {
		return err
	}
	defer lib.Close()

	entries, err := lib.List(cmd.Context())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tELEMENTS\tSIZE\tUPDATED")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", e.Name, e.Elements, e.Size, e.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func runLibRemove(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary(cmd.Context())
	if err != nil {
		return err
	}
	defer lib.Close()

	if err := lib.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
	return nil
}
