// Package output renders check results for machine or human consumption.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format represents an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format string into a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// Print writes v to w in the requested format. Text format uses the value's
// Stringer when available; json and yaml marshal the value's tagged fields.
func Print(w io.Writer, format Format, v interface{}) error {
	rendered, err := Render(format, v)
	if err != nil {
		return err
	}
	_, err = w.Write(rendered)
	return err
}

// Render produces the byte form of v in the requested format.
func Render(format Format, v interface{}) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		if s, ok := v.(fmt.Stringer); ok {
			return []byte(s.String() + "\n"), nil
		}
		return []byte(fmt.Sprintf("%+v\n", v)), nil
	}
}
