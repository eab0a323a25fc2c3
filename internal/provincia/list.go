package provincia

import (
	"fmt"
	"io"
)

// WriteList writes one "<code> - <name>" line per province, codes ascending.
func WriteList(w io.Writer) error {
	for _, p := range ordered {
		if _, err := fmt.Fprintf(w, "%s - %s\n", p.Code, p.Name); err != nil {
			return fmt.Errorf("write province list: %w", err)
		}
	}
	return nil
}
