package secret

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ReadPrefix reads at most n bytes from the start of the file at path
// directly into a new Buffer. The file is closed before returning on every
// path. Nothing is trimmed: the bytes are taken as they are on disk.
func ReadPrefix(path string, n int) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := New(n)
	if err != nil {
		return nil, err
	}

	read, err := io.ReadFull(f, b.data)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		_ = b.Close()
		return nil, fmt.Errorf("secret: reading %s: %w", path, err)
	}
	b.setLen(read)
	return b, nil
}
