package workspace

import (
	"fmt"
	"os"
	"unicode/utf8"

	"flutteredit/internal/errors"

	"github.com/gabriel-vasile/mimetype"
)

// readText reads the whole file and requires it to be valid UTF-8.
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.FromOSError("cannot open file", path, errors.FileReadFailed, err)
	}
	if !utf8.Valid(data) {
		detected := mimetype.Detect(data)
		return "", errors.NewFileError(
			fmt.Sprintf("file is not UTF-8 text (detected %s)", detected.String()),
			path, errors.FileNotText, nil)
	}
	return string(data), nil
}

// writeText truncates path and writes text in full.
func writeText(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return errors.FromOSError("cannot write file", path, errors.FileWriteFailed, err)
	}
	return nil
}
