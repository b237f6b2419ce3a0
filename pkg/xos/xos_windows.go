//go:build windows

// Package xos writes files atomically so that a crash never leaves a
// half-written manifest or config behind.
package xos

import (
	"os"
	"path/filepath"
)

// WriteFile stages data next to filename and then moves it into place.
func WriteFile(filename string, data []byte, perm os.FileMode) error {
	staged, err := writeTemp(filepath.Dir(filename), data, perm)
	if err != nil {
		return err
	}

	// os.Rename refuses to replace an existing file here
	if err := os.Remove(filename); err != nil && !os.IsNotExist(err) {
		os.Remove(staged)
		return err
	}
	if err := os.Rename(staged, filename); err != nil {
		os.Remove(staged)
		return err
	}
	return nil
}

// writeTemp writes data to a synced temp file in dir and returns its name.
func writeTemp(dir string, data []byte, perm os.FileMode) (name string, err error) {
	f, err := os.CreateTemp(dir, ".xos-*")
	if err != nil {
		return "", err
	}
	name = f.Name()
	defer func() {
		if err != nil {
			os.Remove(name)
		}
	}()

	_, err = f.Write(data)
	if err == nil {
		err = f.Sync()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", err
	}
	return name, os.Chmod(name, perm)
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
