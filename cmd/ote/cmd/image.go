package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceElectron/pkg/image"
)

var (
	imageRotate  float64
	imageReflect string
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Primitive record stream operations",
	Long: `Commands for primitive record streams such as

  RECT 0 0 10 5
  STRING 1 2 "U1"

Input is read from the named file, or stdin when the file is - or missing.`,
}

var imageCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Parse a record stream and report what it holds",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runImageCheck,
}

var imageFmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Rewrite a record stream in canonical form",
	Long: `Parse the stream and print it back one record per line, grouped by kind.
--rotate and --reflect transform the image first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImageFmt,
}

func init() {
	rootCmd.AddCommand(imageCmd)
	imageCmd.AddCommand(imageCheckCmd, imageFmtCmd)

	imageFmtCmd.Flags().Float64Var(&imageRotate, "rotate", 0, "rotate by degrees before printing")
	imageFmtCmd.Flags().StringVar(&imageReflect, "reflect", "", "reflect across x or y before printing")
}

func readImage(cmd *cobra.Command, args []string) (*image.Image, error) {
	var r io.Reader = cmd.InOrStdin()
	name := "<stdin>"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r, name = f, args[0]
	}

	tokens, err := image.Tokenize(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	img, err := image.Parse(tokens)
	if err != nil {
		var pe *image.ParseError
		if errors.As(err, &pe) && verbose && pe.Pos >= 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d tokens, failed at token %d\n", len(tokens), pe.Pos)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return img, nil
}

func runImageCheck(cmd *cobra.Command, args []string) error {
	img, err := readImage(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "OK: %d primitives\n", img.Len())
	counts := map[image.Kind]int{}
	img.Each(func(it image.Item) { counts[it.Kind()]++ })
	for k := image.KindRect; k <= image.KindJoin; k++ {
		if counts[k] > 0 {
			fmt.Fprintf(out, "  %-6s %d\n", k.Tag(), counts[k])
		}
	}
	if bb := img.Bounds(); !bb.IsEmpty() {
		fmt.Fprintf(out, "Bounds: %v - %v\n", bb.Min, bb.Max)
	}
	return nil
}

func runImageFmt(cmd *cobra.Command, args []string) error {
	img, err := readImage(cmd, args)
	if err != nil {
		return err
	}

	if imageReflect != "" {
		axis, err := image.ParseAxis(imageReflect)
		if err != nil {
			return err
		}
		img.Reflect(axis)
	}
	if imageRotate != 0 {
		img.Rotate(imageRotate)
	}

	fmt.Fprint(cmd.OutOrStdout(), img.String())
	return nil
}
