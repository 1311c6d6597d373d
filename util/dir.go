package util

import (
	"fmt"
	"os"
)

// WithDir changes the working directory to dir, runs fn and changes back to the
// previous working directory on every exit path. The working directory is
// process wide, so callers must not use this from multiple goroutines.
func WithDir(dir string, fn func() error) (err error) {
	previous, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("could not determine working directory: %w", err)
	}
	if err = os.Chdir(dir); err != nil {
		return err
	}
	defer func() {
		if errBack := os.Chdir(previous); errBack != nil && err == nil {
			err = fmt.Errorf("could not restore working directory '%v': %w", previous, errBack)
		}
	}()
	defer ReturnErrOnPanic(&err)()
	return fn()
}
