package file

import (
	"errors"
	"io/fs"
	"os"
)

// Exists returns whether or not a file or path exists
func Exists(name string) bool {
	_, err := os.Stat(name)
	return !errors.Is(err, fs.ErrNotExist)
}
