package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"m3ukit/internal/fileutil"
)

// writeOutput persists data at outputPath under the safe-output contract:
// when the destination is one of the run's own inputs the file is replaced
// atomically; a pre-existing destination that is not an input requires
// --force; otherwise the file is written directly.
func writeOutput(outputPath string, inputs []string, force bool, data []byte) error {
	for _, input := range inputs {
		same, err := fileutil.SamePath(outputPath, input)
		if err != nil {
			return fmt.Errorf("resolve output path: %w", err)
		}
		if same {
			if err := fileutil.ReplaceFile(outputPath, data); err != nil {
				return fmt.Errorf("replace %s: %w", outputPath, err)
			}
			return nil
		}
	}

	if _, err := os.Stat(outputPath); err == nil {
		if !force {
			return fmt.Errorf("output file already exists at %s (use --force to overwrite)", outputPath)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("check output path: %w", err)
	}

	if err := fileutil.WriteFile(outputPath, data); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	return nil
}
