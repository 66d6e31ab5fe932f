// Package iojson writes command results as indented JSON for the
// CLI's --json output modes.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteWith marshals obj as indented JSON to w, followed by a newline.
// A value that cannot be marshaled writes a JSON-shaped error to ew
// instead, so the output stream never carries a half-written document.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		// json.Marshal on a plain string cannot fail; used for escaping.
		msg, _ := json.Marshal(err.Error())
		_, werr := fmt.Fprintf(ew, `{"message":"encode output","data":{"json_error":%s}}`+"\n", msg)
		return werr
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
