package flags

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func AddLines(cmd *cobra.Command) {
	cmd.Flags().StringP("lines", "l", "", "Select a 1-based inclusive line range of the note, e.g. 3-8 or 5.")
}

// HandleLines returns the requested line range. ok is false when the flag
// was not given.
func HandleLines(cmd *cobra.Command) (from, to int, ok bool, err error) {
	raw, _ := cmd.Flags().GetString("lines")
	if strings.TrimSpace(raw) == "" {
		return 0, 0, false, nil
	}
	from, to, err = ParseLines(raw)
	return from, to, err == nil, err
}

// ParseLines parses "A-B" or a single line number "A".
func ParseLines(raw string) (int, int, error) {
	start, end, found := strings.Cut(strings.TrimSpace(raw), "-")

	from, err := strconv.Atoi(strings.TrimSpace(start))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid line range %q: %w", raw, err)
	}
	to := from
	if found {
		to, err = strconv.Atoi(strings.TrimSpace(end))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid line range %q: %w", raw, err)
		}
	}

	if from < 1 || to < from {
		return 0, 0, fmt.Errorf("invalid line range %q: expected 1 <= start <= end", raw)
	}
	return from, to, nil
}
