package output

import (
	"fmt"
	"io"

	"github.com/atotto/clipboard"

	"github.com/Paintersrp/linkext/internal/render"
)

var writeClipboard = clipboard.WriteAll

// Options selects where an externalized result goes.
type Options struct {
	// Stdout prints the result instead of copying it.
	Stdout bool
	// Preview additionally renders the result as styled markdown.
	Preview bool
}

// Deliver sends result to the clipboard (or w when opts.Stdout is set) and
// optionally renders a preview to w.
func Deliver(w io.Writer, result string, opts Options) error {
	if opts.Stdout {
		if _, err := io.WriteString(w, result); err != nil {
			return err
		}
	} else if err := writeClipboard(result); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}

	if opts.Preview {
		rendered, err := render.Markdown(result, 0)
		if err != nil {
			return fmt.Errorf("render preview: %w", err)
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return err
		}
	}
	return nil
}
