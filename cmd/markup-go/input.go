package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// markupExtensions are the file extensions picked up when walking a directory.
var markupExtensions = []string{".html", ".htm", ".xml", ".xhtml", ".svg"}

type sourceInput struct {
	url     string
	content string
}

// readInputs loads every path. "-" or no path reads stdin; directories are
// walked for markup files.
func readInputs(stdin io.Reader, paths []string) ([]sourceInput, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	var inputs []sourceInput
	for _, path := range paths {
		if path == "-" {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("reading stdin: %w", err)
			}
			inputs = append(inputs, sourceInput{url: "<stdin>", content: string(data)})
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if !info.IsDir() {
			input, err := readFile(path)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, input)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isMarkupFile(p) {
				return nil
			}
			input, err := readFile(p)
			if err != nil {
				return err
			}
			inputs = append(inputs, input)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return inputs, nil
}

func readFile(path string) (sourceInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sourceInput{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return sourceInput{url: path, content: string(data)}, nil
}

func isMarkupFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range markupExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
