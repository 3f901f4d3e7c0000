package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// stdinName is the path argument that selects standard input.
const stdinName = "-"

var errBothStdin = errors.New("only one document can be read from stdin")

// readInput reads a named file, or stdin when path is "-".
func readInput(in io.Reader, path string) ([]byte, error) {
	if path == stdinName {
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	return os.ReadFile(path)
}

// writeOutput writes document text followed by a newline to path, or to w
// when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	out := make([]byte, 0, len(data)+1)
	out = append(out, data...)
	out = append(out, '\n')

	if path == "" {
		_, err := w.Write(out)
		return err
	}
	return os.WriteFile(path, out, 0644)
}
