package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/dbkeeper/internal/common"
	"github.com/dmitrijs2005/dbkeeper/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "database.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func fileLen(t *testing.T, s *Store) int64 {
	t.Helper()
	fi, err := os.Stat(s.Path())
	require.NoError(t, err)
	return fi.Size()
}

func names(recs []record.Record) []string {
	res := make([]string, 0, len(recs))
	for _, r := range recs {
		res = append(res, r.Name)
	}
	return res
}

func TestOpen_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(0), fi.Size())

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestOpen_FailsInMissingDirectory(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope", "database.db"))
	require.ErrorIs(t, err, common.ErrIO)
}

func TestOpen_KeepsExistingRecords(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "database.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Insert(ctx, "alice")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	recs, err := s.Scan(ctx, MatchAll)
	require.NoError(t, err)
	assert.Equal(t, []record.Record{{ID: 0, Name: "alice"}}, recs)
}

func TestInsert_MonotonicIDs(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	for i, name := range []string{"a", "a", "b", "a", "c"} {
		rec, err := s.Insert(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, uint8(i), rec.ID)
		assert.Zero(t, fileLen(t, s)%record.Size)
	}

	recs, err := s.Scan(ctx, MatchAll)
	require.NoError(t, err)
	require.Len(t, recs, 5)
	for i, r := range recs {
		assert.Equal(t, uint8(i), r.ID)
	}
	assert.Equal(t, int64(5*record.Size), fileLen(t, s))
}

func TestInsert_NameBoundary(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	fifteen := strings.Repeat("x", record.NameSize)
	sixteen := fifteen + "y"

	rec, err := s.Insert(ctx, fifteen)
	require.NoError(t, err)
	assert.Equal(t, fifteen, rec.Name)

	rec, err = s.Insert(ctx, sixteen)
	require.NoError(t, err)
	assert.Equal(t, fifteen, rec.Name)

	recs, err := s.Scan(ctx, MatchAll)
	require.NoError(t, err)
	assert.Equal(t, []string{fifteen, fifteen}, names(recs))
}

func TestScan_ExactAndWildcard(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	for _, name := range []string{"alice", "bob", "alice"} {
		_, err := s.Insert(ctx, name)
		require.NoError(t, err)
	}

	got, err := s.Scan(ctx, Query("alice"))
	require.NoError(t, err)
	assert.Equal(t, []record.Record{{ID: 0, Name: "alice"}, {ID: 2, Name: "alice"}}, got)

	got, err = s.Scan(ctx, Query(Wildcard))
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "alice"}, names(got))

	got, err = s.Scan(ctx, Query("Alice"))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.Scan(ctx, Query("ali"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestScan_EmptyStore(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Scan(context.Background(), MatchAll)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEach_StopsOnCallbackError(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	for _, name := range []string{"a", "b", "c"} {
		_, err := s.Insert(ctx, name)
		require.NoError(t, err)
	}

	stop := errors.New("stop")
	var seen []string
	err := s.Each(ctx, MatchAll, func(r record.Record) error {
		seen = append(seen, r.Name)
		if r.Name == "b" {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestEach_IgnoresRecordsInsertedDuringScan(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	for _, name := range []string{"a", "b"} {
		_, err := s.Insert(ctx, name)
		require.NoError(t, err)
	}

	var seen []string
	err := s.Each(ctx, MatchAll, func(r record.Record) error {
		seen = append(seen, r.Name)
		_, err := s.Insert(ctx, r.Name+"-copy")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, seen)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, int64(4*record.Size), fileLen(t, s))
}

func TestScan_CanceledContext(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Insert(context.Background(), "a")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Scan(ctx, MatchAll)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWipe_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	for _, name := range []string{"a", "b"} {
		_, err := s.Insert(ctx, name)
		require.NoError(t, err)
	}

	require.NoError(t, s.Wipe(ctx))
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, s.Wipe(ctx))
	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, int64(0), fileLen(t, s))

	rec, err := s.Insert(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, uint8(0), rec.ID)
}

func TestInsert_OverwritesTornTail(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "database.db")

	b := record.Encode(record.Record{ID: 0, Name: "first"})
	require.NoError(t, os.WriteFile(path, append(b[:], 1, 2, 3), 0o600))

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rec, err := s.Insert(ctx, "second")
	require.NoError(t, err)
	assert.Equal(t, uint8(1), rec.ID)
	assert.Equal(t, int64(2*record.Size), fileLen(t, s))
}

// shortFile writes at most limit bytes per WriteAt call.
type shortFile struct {
	*os.File
	limit int
}

func (f *shortFile) WriteAt(p []byte, off int64) (int, error) {
	if len(p) > f.limit {
		p = p[:f.limit]
	}
	return f.File.WriteAt(p, off)
}

func TestInsert_ShortWriteRollsBack(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.Insert(ctx, "kept")
	require.NoError(t, err)

	s.f = &shortFile{File: s.f.(*os.File), limit: 5}

	_, err = s.Insert(ctx, "lost")
	require.ErrorIs(t, err, common.ErrShortWrite)

	assert.Equal(t, int64(record.Size), fileLen(t, s))
	recs, err := s.Scan(ctx, MatchAll)
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, names(recs))
}

// failingFile fails every write without writing anything.
type failingFile struct {
	*os.File
}

func (f *failingFile) WriteAt([]byte, int64) (int, error) {
	return 0, errors.New("disk full")
}

func TestInsert_WriteErrorNotCommitted(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	s.f = &failingFile{File: s.f.(*os.File)}

	_, err := s.Insert(ctx, "nope")
	require.ErrorIs(t, err, common.ErrShortWrite)
	assert.Contains(t, err.Error(), "disk full")

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestPredicates(t *testing.T) {
	alice := record.Record{ID: 0, Name: "alice"}
	long := record.Record{ID: 1, Name: strings.Repeat("z", record.NameSize)}

	assert.True(t, MatchAll(alice))
	assert.True(t, Query("*")(alice))
	assert.True(t, Exact("alice")(alice))
	assert.False(t, Exact("alice ")(alice))
	assert.False(t, Exact("*")(alice))
	assert.True(t, Exact(strings.Repeat("z", record.NameSize+4))(long))
}
