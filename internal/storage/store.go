package storage

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/dbkeeper/internal/common"
	"github.com/dmitrijs2005/dbkeeper/internal/record"
)

// file is the subset of *os.File the store relies on.
type file interface {
	io.ReaderAt
	io.WriterAt
	Truncate(size int64) error
	Stat() (os.FileInfo, error)
	Sync() error
	Close() error
}

// Store owns the open store file for the lifetime of the process.
type Store struct {
	path string
	f    file
}

// Open opens the store at path for reading and writing, creating an empty
// file if it does not exist yet.
func Open(path string) (*Store, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", common.ErrIO, path, err)
	}
	return &Store{path: path, f: f}, nil
}

// Path returns the location of the store file.
func (s *Store) Path() string {
	return s.path
}

// Close releases the underlying file.
func (s *Store) Close() error {
	if err := s.f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", common.ErrIO, s.path, err)
	}
	return nil
}

func (s *Store) size() (int64, error) {
	fi, err := s.f.Stat()
	if err != nil {
		return 0, fmt.Errorf("%w: stat %s: %v", common.ErrIO, s.path, err)
	}
	return fi.Size(), nil
}

// Count returns the number of complete records in the store.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	size, err := s.size()
	if err != nil {
		return 0, err
	}
	return int(size / record.Size), nil
}

// Insert appends a record named name and returns it as stored. The id is the
// record count before the call; it is a single byte on disk, so it wraps
// after 255.
//
// A failed or short write is not committed: the file is truncated back to
// the length it had before the call, keeping the length a multiple of
// record.Size, and an error wrapping common.ErrShortWrite is returned.
func (s *Store) Insert(ctx context.Context, name string) (record.Record, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return record.Record{}, err
	}

	rec := record.Record{ID: uint8(n), Name: record.TruncateName(name)}
	buf := record.Encode(rec)
	offset := int64(n) * record.Size

	written, err := s.f.WriteAt(buf[:], offset)
	if err == nil && written != record.Size {
		err = io.ErrShortWrite
	}
	if err == nil {
		err = s.f.Sync()
	}
	if err != nil {
		if terr := s.f.Truncate(offset); terr != nil {
			return record.Record{}, fmt.Errorf("%w: wrote %d of %d bytes at %d: %v (rollback failed: %v)",
				common.ErrShortWrite, written, record.Size, offset, err, terr)
		}
		return record.Record{}, fmt.Errorf("%w: wrote %d of %d bytes at %d: %v",
			common.ErrShortWrite, written, record.Size, offset, err)
	}
	return rec, nil
}

// Each reads the store from the beginning and calls fn for every record
// accepted by pred, in storage order. Only the records present when the call
// started are visited. Iteration stops at the first error returned by fn.
func (s *Store) Each(ctx context.Context, pred Predicate, fn func(record.Record) error) error {
	size, err := s.size()
	if err != nil {
		return err
	}
	n := size / record.Size

	buf := make([]byte, record.Size)
	for i := int64(0); i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.f.ReadAt(buf, i*record.Size); err != nil {
			return fmt.Errorf("%w: read record %d: %v", common.ErrIO, i, err)
		}
		rec, err := record.Decode(buf)
		if err != nil {
			return err
		}
		if !pred(rec) {
			continue
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

// Scan returns the records accepted by pred in storage order.
func (s *Store) Scan(ctx context.Context, pred Predicate) ([]record.Record, error) {
	var res []record.Record
	err := s.Each(ctx, pred, func(r record.Record) error {
		res = append(res, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Wipe truncates the store to zero records. Wiping an empty store is not an
// error. Confirmation is the caller's business.
func (s *Store) Wipe(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.f.Truncate(0); err != nil {
		return fmt.Errorf("%w: truncate %s: %v", common.ErrIO, s.path, err)
	}
	if err := s.f.Sync(); err != nil {
		return fmt.Errorf("%w: sync %s: %v", common.ErrIO, s.path, err)
	}
	return nil
}
