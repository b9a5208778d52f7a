package main

import (
	"fmt"
	"io"
	"os"
)

// writeOutput appends the work item id to the step output file, or prints it
// to stdout when no file is configured.
func writeOutput(path string, id int) error {
	if path == "" {
		return writeID(os.Stdout, id)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer f.Close()

	return writeID(f, id)
}

func writeID(w io.Writer, id int) error {
	_, err := fmt.Fprintf(w, "id=%d\n", id)
	return err
}
