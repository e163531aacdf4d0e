package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rezonia/ubl-processor/internal/logging"
	"github.com/rezonia/ubl-processor/pkg/ublib"
)

// collectFiles expands globs and walks directories. Files named explicitly
// are kept whatever their extension.
func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("file not found: %s", arg)
			}

			if info.IsDir() {
				err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
					if err != nil {
						return err
					}
					if !info.IsDir() && isSupportedFile(path) {
						files = append(files, path)
					}
					return nil
				})
				if err != nil {
					return nil, err
				}
			} else {
				files = append(files, arg)
			}
			continue
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				continue
			}
			if info.IsDir() {
				continue
			}
			if len(matches) == 1 || isSupportedFile(match) {
				files = append(files, match)
			}
		}
	}

	return files, nil
}

func isSupportedFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xml")
}

// readInputs loads every file into a batch input named after its path
func readInputs(files []string) ([]ublib.Input, error) {
	inputs := make([]ublib.Input, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		inputs = append(inputs, ublib.Input{
			Name:       file,
			DocumentID: strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)),
			Data:       data,
		})
	}
	return inputs, nil
}

func newProcessor(validate, strict bool) *ublib.Processor {
	opts := ublib.DefaultOptions()
	opts.Workers = cfg.BatchWorkers
	opts.Validate = validate
	opts.Strict = strict
	opts.Logger = logging.Component("cli")
	return ublib.NewProcessor(opts)
}
