package monitor

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// safeParseJSON decodes JSON while preserving numbers as json.Number.
// It mirrors json.Unmarshal by rejecting trailing non-whitespace data.
func safeParseJSON(data []byte, dest any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(dest); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("extra JSON input")
	}
	return nil
}
