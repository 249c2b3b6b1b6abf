// Package storage implements the flat-file record store.
//
// The store is a single file holding a raw sequence of fixed-width records
// (see package record). Records are appended at the end of the file and the
// file is only ever shrunk by Wipe, which truncates it to zero length.
//
// All file access is positional (ReadAt/WriteAt), so no operation depends on
// or leaves behind a shared file cursor. The record count is always derived
// from the current file length:
//
//	count = length / record.Size
//
// Store is not safe for concurrent use. It is meant to be owned by a single
// interactive session.
package storage
