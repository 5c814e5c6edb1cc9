package file

import (
	"os"

	"github.com/pkg/errors"
)

// Exists returns a bool indicating if the specified file exists or not.
func Exists(name string) bool {
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}
	return true
}

// EnsureDirectory creates the specified directory, and any missing parents,
// if it does not already exist.
func EnsureDirectory(dir string) error {
	if _, err := os.Stat(dir); err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(
				err,
				"error checking for existence of directory %s",
				dir,
			)
		}
		// The directory doesn't exist-- create it
		if err = os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "error creating directory %s", dir)
		}
	}
	return nil
}
