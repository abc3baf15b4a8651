package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader decodes a JSON document of type T from the file named by its
// flag, or from stdin when the flag is unset. Keys listed in Required must
// be present in the document; an empty value still counts as present.
type FileReader[T any] struct {
	// Usage overrides the flag's help text.
	Usage    string
	Required []string

	fileFlagValue string
}

func (fr *FileReader[T]) Flag() *cli.StringFlag {
	usage := fr.Usage
	if usage == "" {
		usage = "path to JSON file (reads from stdin if not provided)"
	}
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       usage,
		Destination: &fr.fileFlagValue,
	}
}

func (fr *FileReader[T]) Read() (T, error) {
	var zero T

	if fr.fileFlagValue != "" {
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return zero, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		return fr.decode(f)
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return zero, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe JSON input")
	}
	return fr.decode(os.Stdin)
}

func (fr *FileReader[T]) decode(r io.Reader) (T, error) {
	var input T

	data, err := io.ReadAll(r)
	if err != nil {
		return input, fmt.Errorf("read input: %w", err)
	}

	if len(fr.Required) > 0 {
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(data, &keys); err != nil {
			return input, fmt.Errorf("decode JSON: %w", err)
		}

		var missing []string
		for _, k := range fr.Required {
			if _, ok := keys[k]; !ok {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			return input, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
		}
	}

	if err := json.Unmarshal(data, &input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}
