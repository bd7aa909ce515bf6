package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceElectron/pkg/electron"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/image"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/scheme"
)

var (
	elementOutput string
	elementAngle  float64
	elementAxis   string
	elementX      float64
	elementY      float64
)

var elementCmd = &cobra.Command{
	Use:   "element",
	Short: "Transform elements inside a scheme",
}

var elementRotateCmd = &cobra.Command{
	Use:   "rotate <file> <name>",
	Short: "Rotate an element's drawing about its origin",
	Long: `Rotate the named element by --angle degrees (default: rotation_step
from the config). The file is rewritten unless -o is given.`,
	Args: cobra.ExactArgs(2),
	RunE: runElementRotate,
}

var elementReflectCmd = &cobra.Command{
	Use:   "reflect <file> <name>",
	Short: "Mirror an element's drawing across an axis",
	Args:  cobra.ExactArgs(2),
	RunE:  runElementReflect,
}

var elementMoveCmd = &cobra.Command{
	Use:   "move <file> <name>",
	Short: "Place an element at a new position in its parent's frame",
	Long: `Set the named element's position. A coordinate that is not given keeps
its current value. Children move along with the element.`,
	Args: cobra.ExactArgs(2),
	RunE: runElementMove,
}

func init() {
	rootCmd.AddCommand(elementCmd)
	elementCmd.AddCommand(elementRotateCmd, elementReflectCmd, elementMoveCmd)

	elementCmd.PersistentFlags().StringVarP(&elementOutput, "output", "o", "", "write the result here instead of in place")
	elementRotateCmd.Flags().Float64VarP(&elementAngle, "angle", "a", 0, "rotation in degrees, counter-clockwise")
	elementReflectCmd.Flags().StringVar(&elementAxis, "axis", "x", "axis to mirror across (x or y)")
	elementMoveCmd.Flags().Float64Var(&elementX, "x", 0, "new x position")
	elementMoveCmd.Flags().Float64Var(&elementY, "y", 0, "new y position")
}

// selectElement loads path and selects the first element called name
func selectElement(path, name string) (*electron.Electron, error) {
	e := electron.New(scheme.New())
	if err := e.LoadFromFile(path); err != nil {
		return nil, err
	}
	id, ok := e.FindByName(name)
	if !ok {
		return nil, fmt.Errorf("%s: no element named %q", path, name)
	}
	e.SetCurrent(id)
	return e, nil
}

func saveElement(cmd *cobra.Command, e *electron.Electron, in string, what string) error {
	out := in
	if elementOutput != "" {
		out = elementOutput
	}
	if err := e.SaveToFile(out); err != nil {
		return err
	}
	el, _ := e.Current()
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s\n", what, el, out)
	return nil
}

func runElementRotate(cmd *cobra.Command, args []string) error {
	e, err := selectElement(args[0], args[1])
	if err != nil {
		return err
	}

	angle := elementAngle
	if !cmd.Flags().Changed("angle") {
		angle = cfg.RotationStep
	}
	e.RotateCurrent(angle)
	return saveElement(cmd, e, args[0], fmt.Sprintf("rotated %g°", angle))
}

func runElementReflect(cmd *cobra.Command, args []string) error {
	axis, err := image.ParseAxis(elementAxis)
	if err != nil {
		return err
	}
	e, err := selectElement(args[0], args[1])
	if err != nil {
		return err
	}

	e.ReflectCurrent(axis)
	return saveElement(cmd, e, args[0], fmt.Sprintf("reflected across %s", axis))
}

func runElementMove(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("x") && !cmd.Flags().Changed("y") {
		return fmt.Errorf("nothing to move: give --x and/or --y")
	}
	e, err := selectElement(args[0], args[1])
	if err != nil {
		return err
	}

	id := e.CurrentID()
	el, _ := e.Current()
	pos := el.Pos
	if cmd.Flags().Changed("x") {
		pos.X = elementX
	}
	if cmd.Flags().Changed("y") {
		pos.Y = elementY
	}
	if err := e.Move(id, pos); err != nil {
		return err
	}

	world, _ := e.WorldPos(id)
	return saveElement(cmd, e, args[0], fmt.Sprintf("moved (world %v)", world))
}
