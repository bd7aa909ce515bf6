package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceElectron/pkg/electron"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/scheme"
)

var schemeForce bool

var schemeCmd = &cobra.Command{
	Use:   "scheme",
	Short: "Scheme file operations",
	Long:  `Commands for working with electron scheme files (.esch)`,
}

var schemeNewCmd = &cobra.Command{
	Use:   "new <file>",
	Short: "Create an empty scheme file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchemeNew,
}

var schemeInfoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show scheme summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchemeInfo,
}

var schemeTreeCmd = &cobra.Command{
	Use:   "tree <file>",
	Short: "Print the element tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchemeTree,
}

func init() {
	rootCmd.AddCommand(schemeCmd)
	schemeCmd.AddCommand(schemeNewCmd, schemeInfoCmd, schemeTreeCmd)

	schemeNewCmd.Flags().BoolVarP(&schemeForce, "force", "f", false, "overwrite an existing file")
}

func runSchemeNew(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !schemeForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	e := electron.New(scheme.New())
	if err := e.SaveToFile(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}

func runSchemeInfo(cmd *cobra.Command, args []string) error {
	t, err := scheme.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("error parsing scheme: %w", err)
	}

	var components, wires, primitives, points int
	t.Walk(func(_ electron.NodeID, _ int, el *electron.Element) bool {
		if el.IsWire() {
			wires++
			points += len(el.Points)
		} else {
			components++
			primitives += el.Image.Len()
		}
		return true
	})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scheme: %s\n", args[0])
	fmt.Fprintf(out, "Elements: %d (%d top level)\n", t.Len(), len(t.Roots()))
	fmt.Fprintf(out, "  Components: %d (%d primitives)\n", components, primitives)
	fmt.Fprintf(out, "  Wires: %d (%d points)\n", wires, points)
	if bb := electron.WorldBounds(t); !bb.IsEmpty() {
		fmt.Fprintf(out, "Bounds: %v - %v (%.4g x %.4g)\n", bb.Min, bb.Max, bb.Width(), bb.Height())
	}
	return nil
}

func runSchemeTree(cmd *cobra.Command, args []string) error {
	t, err := scheme.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("error parsing scheme: %w", err)
	}
	printTree(cmd.OutOrStdout(), t)
	return nil
}

func printTree(w io.Writer, t *electron.Tree) {
	t.Walk(func(_ electron.NodeID, depth int, el *electron.Element) bool {
		indent := strings.Repeat("  ", depth)
		if el.IsWire() {
			fmt.Fprintf(w, "%s%s (%d points)\n", indent, el, len(el.Points))
		} else {
			fmt.Fprintf(w, "%s%s (%d primitives)\n", indent, el, el.Image.Len())
		}
		return true
	})
}
