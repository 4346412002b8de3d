package processor

import (
	"io"
	"os"
	"path/filepath"
)

// copyOriginal copies src unmodified into destDir under its own name,
// keeping its permission bits and modification time.
func copyOriginal(src, destDir string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", err
	}

	dest := filepath.Join(destDir, filepath.Base(src))
	tmpFile, err := os.CreateTemp(destDir, ".webpify-copy-*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmpFile.Name())

	if _, err := io.Copy(tmpFile, in); err != nil {
		_ = tmpFile.Close()
		return "", err
	}
	if err := tmpFile.Chmod(info.Mode().Perm()); err != nil {
		_ = tmpFile.Close()
		return "", err
	}
	if err := tmpFile.Close(); err != nil {
		return "", err
	}
	if err := os.Chtimes(tmpFile.Name(), info.ModTime(), info.ModTime()); err != nil {
		return "", err
	}
	if err := os.Rename(tmpFile.Name(), dest); err != nil {
		return "", err
	}
	return dest, nil
}
