// Purpose: Detect stdout terminal state for CLI behavior.
// Exports: StdoutIsTTY.
// Role: Chooses between styled and plain help output.
package timer

import (
	"os"

	"golang.org/x/term"
)

// StdoutIsTTY reports whether stdout is a terminal (supports color, interactive).
func StdoutIsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
