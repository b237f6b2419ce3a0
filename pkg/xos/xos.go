//go:build !windows

// Package xos writes files atomically so that a crash never leaves a
// half-written manifest or config behind.
package xos

import (
	"os"

	"github.com/google/renameio/v2"
)

// WriteFile writes data to filename through a temp file and rename.
func WriteFile(filename string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(filename, data, perm)
}

// WriteFileWithBackup keeps the previous contents of filename in
// filename + ".bak" before replacing it.
func WriteFileWithBackup(filename string, data []byte, perm os.FileMode) error {
	original, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := WriteFile(filename+".bak", original, perm); err != nil {
			return err
		}
	case !os.IsNotExist(err):
		return err
	}
	return WriteFile(filename, data, perm)
}
