package compat

import (
	"bytes"
	"fmt"
	"strconv"
)

// Flag is a boolean that tolerates the encodings older clients actually
// send: true/false, 0/1, or "0"/"1".
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	switch string(data) {
	case "true", "1":
		*f = true
		return nil
	case "false", "0", "", "null":
		*f = false
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("invalid boolean flag %q", data)
	}
	*f = n != 0
	return nil
}

func (f Flag) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatBool(bool(f))), nil
}
