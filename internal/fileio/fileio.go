package fileio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var (
	ErrShortRead  = errors.New("short read")
	ErrShortWrite = errors.New("short write")
)

// ReadAll loads the whole file at path. The number of bytes read must
// match the size reported by the file system.
func ReadAll(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("reading %s: not a regular file", path)
	}

	data, err := readFull(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// readFull reads exactly size bytes from r.
func readFull(r io.Reader, size int64) ([]byte, error) {
	data := make([]byte, size)
	n, err := io.ReadFull(r, data)
	if errors.Is(err, io.ErrUnexpectedEOF) || (errors.Is(err, io.EOF) && len(data) > 0) {
		return nil, fmt.Errorf("%w: %d of %d bytes", ErrShortRead, n, len(data))
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// writeFull writes all of data to w, reporting a short count that came
// without an error as ErrShortWrite.
func writeFull(w io.Writer, data []byte) error {
	n, err := w.Write(data)
	if err == nil && n != len(data) {
		err = fmt.Errorf("%w: %d of %d bytes", ErrShortWrite, n, len(data))
	}
	return err
}

// WriteAll publishes data at path. The bytes are written to a temporary
// file in the same directory which is renamed over path only once it is
// complete, so a failed write never leaves a partial file at path.
func WriteAll(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	file, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary file for %s: %w", path, err)
	}
	temporaryPath := file.Name()

	if err := writeFull(file, data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Chmod(temporaryPath, perm); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming %s into place: %w", path, err)
	}
	return nil
}
