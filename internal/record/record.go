// Package record defines the on-disk shape of one store entry.
//
// A record occupies exactly Size bytes:
//
//	offset  len  field
//	0       1    id (uint8)
//	1       15   name, zero-padded, NUL-terminated if shorter than 15
//
// There is no header, magic number or checksum. Record i of a store lives at
// byte offset i*Size.
package record

import (
	"bytes"
	"errors"
	"fmt"
)

const (
	// Size is the fixed width of an encoded record.
	Size = 16
	// NameSize is the number of bytes available for the name.
	NameSize = Size - 1
)

// ErrBadLength is returned by Decode for buffers that are not Size bytes long.
var ErrBadLength = errors.New("record: bad buffer length")

// Record is a single stored entry. ID equals the insertion index at the time
// the record was written.
type Record struct {
	ID   uint8
	Name string
}

// String formats the record the way the console lists it.
func (r Record) String() string {
	return fmt.Sprintf("%3d | %s", r.ID, r.Name)
}

// TruncateName returns name cut to NameSize bytes, which is the form it
// takes once stored.
func TruncateName(name string) string {
	if len(name) > NameSize {
		return name[:NameSize]
	}
	return name
}

// EncodeTo writes r into dst, which must be at least Size bytes long.
// Overlong names are truncated silently.
func EncodeTo(dst []byte, r Record) {
	_ = dst[Size-1]
	dst[0] = r.ID
	n := copy(dst[1:Size], TruncateName(r.Name))
	clear(dst[1+n : Size])
}

// Encode returns the fixed-width encoding of r.
func Encode(r Record) [Size]byte {
	var b [Size]byte
	EncodeTo(b[:], r)
	return b
}

// Decode parses one encoded record. The name ends at the first zero byte or
// after NameSize bytes, whichever comes first.
func Decode(b []byte) (Record, error) {
	if len(b) != Size {
		return Record{}, fmt.Errorf("%w: got %d, want %d", ErrBadLength, len(b), Size)
	}
	name := b[1:Size]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	return Record{ID: b[0], Name: string(name)}, nil
}
