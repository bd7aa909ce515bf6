// ote inspects and edits electron schemes from the command line
package main

import "github.com/OpenTraceLab/OpenTraceElectron/cmd/ote/cmd"

func main() {
	cmd.Execute()
}
