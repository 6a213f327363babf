package project

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var maxExtractSize int64 = 500 * 1024 * 1024

var ErrInvalidPath = errors.New("invalid path given")

// ValidateDirectory checks that dir names a new project directory.
func ValidateDirectory(dir string) error {
	base := filepath.Base(dir)
	if dir == "" || base == "." || base == ".." || base == string(filepath.Separator) {
		return fmt.Errorf("%w: %q", ErrInvalidPath, dir)
	}
	if _, err := os.Lstat(dir); err == nil {
		return fmt.Errorf("%q already exists", dir)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// enclosedPath returns the extraction path of an archive entry, or false if
// the entry would end up outside of dir.
func enclosedPath(dir, name string) (string, bool) {
	if name == "" || strings.Contains(name, "\x00") {
		return "", false
	}
	cleanName := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleanName) || strings.HasPrefix(name, "/") || cleanName == ".." ||
		strings.HasPrefix(cleanName, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.Join(dir, cleanName), true
}

func extractFile(f *zip.File, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	out, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	written, err := io.CopyN(out, rc, maxExtractSize+1)
	if err != nil && !errors.Is(err, io.EOF) {
		closeErr := out.Close()
		if closeErr != nil {
			return fmt.Errorf("copy error: %w; additionally, close error: %w", err, closeErr)
		}
		return err
	}
	if written > maxExtractSize {
		_ = out.Close()
		return fmt.Errorf("extracted file %s exceeds maximum allowed size", f.Name)
	}
	return out.Close()
}

func extractEntry(f *zip.File, dir string) error {
	outPath, ok := enclosedPath(dir, f.Name)
	if !ok {
		return nil
	}
	if strings.HasSuffix(f.Name, "/") || f.FileInfo().IsDir() {
		if err := os.MkdirAll(outPath, 0o755); err != nil {
			return err
		}
	} else if err := extractFile(f, outPath); err != nil {
		return err
	}
	// only archives created on unix carry permission bits
	if f.CreatorVersion>>8 == 3 {
		if perm := f.Mode().Perm(); perm != 0 {
			return os.Chmod(outPath, perm)
		}
	}
	return nil
}

// Extract unpacks the zip archive at archivePath into the new directory dir.
// Entries pointing outside of dir are skipped. If extraction fails, dir is
// removed again.
func Extract(archivePath, dir string) (err error) {
	zr, err := zip.OpenReader(archivePath)
	// insecure entry names are skipped during extraction
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer zr.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.RemoveAll(dir)
		}
	}()

	for _, f := range zr.File {
		if err := extractEntry(f, dir); err != nil {
			return fmt.Errorf("failed to extract %s: %w", f.Name, err)
		}
	}
	return nil
}
