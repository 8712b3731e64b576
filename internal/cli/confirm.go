package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptConfirm asks the operator to confirm a side-effect action. Anything
// other than an explicit yes declines.
func PromptConfirm(in io.Reader, out io.Writer, message string) (bool, error) {
	if out != nil {
		if _, err := fmt.Fprintf(out, "%s [y/N]: ", message); err != nil {
			return false, err
		}
	}
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
