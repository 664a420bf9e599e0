package util

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// CopyFile copies src to dst, creating dst's directory, and returns the
// number of bytes written.
func CopyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("copy: %w", err)
	}
	defer func() {
		if cerr := in.Close(); cerr != nil {
			log.Printf("error closing input file %s: %v", src, cerr)
		}
	}()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return 0, fmt.Errorf("copy: %w", err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("copy: %w", err)
	}

	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		return n, fmt.Errorf("copy %s: %w", src, err)
	}

	return n, nil
}
