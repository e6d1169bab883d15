package logging

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
)

// maxBackups is how many rotated generations are kept (x.log.1 … x.log.5).
const maxBackups = 5

// rotate shifts x.log.N-1 to x.log.N (dropping the oldest) and moves x.log
// to x.log.1. The caller reopens a fresh x.log.
func rotate(filePath string) error {
	backup := func(i int) string { return filePath + "." + strconv.Itoa(i) }

	if err := os.Remove(backup(maxBackups)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("logging: rotate remove %s: %w", backup(maxBackups), err)
	}

	for i := maxBackups - 1; i >= 0; i-- {
		src := filePath
		if i > 0 {
			src = backup(i)
		}
		dst := backup(i + 1)
		if err := os.Rename(src, dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("logging: rotate rename %s -> %s: %w", src, dst, err)
		}
	}

	return nil
}
