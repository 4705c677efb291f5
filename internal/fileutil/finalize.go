// Package fileutil provides shared file operation helpers.
package fileutil

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// RandomNameBytes is the number of random bytes hex-encoded into generated file names.
const RandomNameBytes = 16

// TempContext holds state for an atomic file write operation.
type TempContext struct {
	OutPath string
	TmpFile *os.File
	TmpName string
}

// NewTempContext creates a temp file next to outPath for atomic writing.
// Caller must defer CleanupOnError.
func NewTempContext(outPath string) (*TempContext, error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(outPath), ".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	return &TempContext{
		OutPath: outPath,
		TmpFile: tmpFile,
		TmpName: tmpFile.Name(),
	}, nil
}

// CleanupOnError closes the temp file and removes it if the write failed.
func (tc *TempContext) CleanupOnError(errp *error) {
	tc.TmpFile.Close() //nolint:gosec // best-effort cleanup

	if *errp != nil {
		os.Remove(tc.TmpName) //nolint:gosec // best-effort cleanup
	}
}

// Commit closes the temp file, applies perm and renames it onto OutPath.
func (tc *TempContext) Commit(perm os.FileMode) error {
	if err := tc.TmpFile.Close(); err != nil {
		return fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Chmod(tc.TmpName, perm); err != nil {
		return fmt.Errorf("setting file permissions: %w", err)
	}

	if err := os.Rename(tc.TmpName, tc.OutPath); err != nil {
		return fmt.Errorf("renaming output file: %w", err)
	}

	return nil
}

// WriteAtomic creates outPath with perm from what write produces.
// outPath only appears once write succeeded; on failure nothing is left behind.
func WriteAtomic(outPath string, perm os.FileMode, write func(w io.Writer) error) (err error) {
	tc, err := NewTempContext(outPath)
	if err != nil {
		return err
	}

	defer tc.CleanupOnError(&err)

	if err = write(tc.TmpFile); err != nil {
		return err
	}

	return tc.Commit(perm)
}

// RandomName returns a random hexadecimal file name.
func RandomName() (string, error) {
	b := make([]byte, RandomNameBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating file name: %w", err)
	}

	return hex.EncodeToString(b), nil
}

// ResolveOutput returns path unchanged when it names a file, or a random file name
// inside it when path is empty or an existing directory.
func ResolveOutput(path string) (string, error) {
	if path != "" {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			return path, nil //nolint:nilerr // a missing path is a file to create
		}
	}

	name, err := RandomName()
	if err != nil {
		return "", err
	}

	return filepath.Join(path, name), nil
}

// Size returns the size of the file at path.
func Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", path, err)
	}

	return info.Size(), nil
}
