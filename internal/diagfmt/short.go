package diagfmt

import (
	"io"

	"ctfmt/internal/diag"
)

// Short writes one line per diagnostic, see diag.FormatShort.
func Short(w io.Writer, bag *diag.Bag) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	_, err := io.WriteString(w, diag.FormatShort(bag.Items())+"\n")
	return err
}
