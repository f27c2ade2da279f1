package site

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/mdsite/internal/logfields"
)

// CopyTree mirrors src into dst. Directories are created with the mode of
// their source, files are copied with theirs. A missing src is not an error.
// It returns the number of files copied and their total size.
func CopyTree(src, dst string) (int, int64, error) {
	info, err := os.Stat(src)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Source directory does not exist, nothing to copy", logfields.Path(src))
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("stat %s: %w", src, err)
	}
	if !info.IsDir() {
		return 0, 0, fmt.Errorf("%s is not a directory", src)
	}

	var files int
	var total int64
	err = filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		fi, err := d.Info()
		if err != nil {
			return err
		}
		if d.IsDir() {
			return os.MkdirAll(target, fi.Mode().Perm())
		}
		if !fi.Mode().IsRegular() {
			slog.Debug("Skipping non-regular file", logfields.Path(p))
			return nil
		}
		n, err := copyFile(p, target, fi.Mode().Perm())
		if err != nil {
			return err
		}
		files++
		total += n
		return nil
	})
	if err != nil {
		return files, total, fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return files, total, nil
}

// Clean removes dir and everything below it, then recreates it empty.
func Clean(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}

func copyFile(src, dst string, mode fs.FileMode) (int64, error) {
	in, err := os.Open(filepath.Clean(src))
	if err != nil {
		return 0, err
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, err
	}
	out, err := os.OpenFile(filepath.Clean(dst), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		return n, err
	}
	return n, out.Close()
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
