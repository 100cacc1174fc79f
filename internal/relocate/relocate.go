// Package relocate performs the filesystem move of a music file to its
// computed destination, with content checksums guarding against partial or
// corrupted copies.
package relocate

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Checksum returns the SHA-256 digest of the file at path.
func Checksum(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

// ContentsEqual reports whether two files hold identical content.
// Sizes are compared first so the common distinct-file case avoids hashing.
func ContentsEqual(a, b string) (bool, error) {
	ia, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	ib, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	if ia.Size() != ib.Size() {
		return false, nil
	}

	ha, err := Checksum(a)
	if err != nil {
		return false, err
	}
	hb, err := Checksum(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ha, hb), nil
}

// Move relocates src to dest, creating missing parent directories first.
// A same-filesystem rename is tried first; otherwise the file is copied with
// checksum verification and the source removed afterwards. On failure any
// partially written destination is removed and the source is left untouched.
func Move(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	// Try rename first (works if same filesystem)
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	// Fall back to verified copy + delete
	if err := copyVerified(src, dest); err != nil {
		return err
	}
	return os.Remove(src)
}

// copyVerified streams src to dest while hashing both sides, then checks
// size and digest. The destination is removed on any failure.
func copyVerified(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	srcHash := sha256.New()
	destHash := sha256.New()
	written, err := io.Copy(io.MultiWriter(out, destHash), io.TeeReader(in, srcHash))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dest)
		return err
	}

	if written != info.Size() {
		_ = os.Remove(dest)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", info.Size(), written)
	}
	if !bytes.Equal(srcHash.Sum(nil), destHash.Sum(nil)) {
		_ = os.Remove(dest)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}
	return nil
}
