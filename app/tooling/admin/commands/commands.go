// Package commands contains the functionality for the set of commands
// currently supported by the admin tool.
package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

// printJSON writes the raw json document indented to stdout.
func printJSON(raw json.RawMessage) error {
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return err
	}

	fmt.Println(out.String())
	return nil
}
