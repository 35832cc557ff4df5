package utils

import (
	"os"
	"path/filepath"
)

// ReadyDir ...
func ReadyDir(filename string) error {
	dir := filepath.Dir(filename)
	return os.MkdirAll(dir, os.FileMode(0755))
}

// SaveFile writes data to a temporary sibling and renames it over filename,
// so a failed write never leaves a truncated file behind
func SaveFile(filename string, data []byte) error {
	if err := ReadyDir(filename); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err = f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err = f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err = os.Chmod(tmp, os.FileMode(0644)); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, filename)
}
