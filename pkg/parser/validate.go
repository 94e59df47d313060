package parser

import (
	"errors"
	"fmt"
	"os"
)

// ValidateInputFile checks that path is a readable, non-empty regular file
func ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access input file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input path is a directory: %s", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("input file is empty: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	return file.Close()
}

// ValidateInputFiles validates every path and reports all failures together
func ValidateInputFiles(paths ...string) error {
	var errs []error
	for _, path := range paths {
		if err := ValidateInputFile(path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
