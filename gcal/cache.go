package gcal

import (
	"errors"
	"io"
	"os"
	"time"
)

var errSnapshotClosed = errors.New("gcal: snapshot file is not open")

// Epoch is the modification time reported for a snapshot that has never
// been written.
var Epoch = time.Unix(0, 0)

// Snapshot is the agenda text drawn by the last render, kept in a plain
// text file whose modification time records when it was drawn.
//
// A Snapshot holds its file open from OpenSnapshot until Close so that the
// read, the comparison and the rewrite happen on a single handle.
type Snapshot struct {
	Path     string
	Modified time.Time
	Text     string

	f *os.File
}

// OpenSnapshot opens the snapshot at path, creating an empty one if it does
// not exist. The returned snapshot is never nil: when the file cannot be
// read it reports no text and the Epoch, alongside the error.
func OpenSnapshot(path string) (*Snapshot, error) {
	s := &Snapshot{Path: path, Modified: Epoch}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err == nil {
		s.f = f
		return s, nil
	}
	if !os.IsExist(err) {
		return s, err
	}

	f, err = os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		return s, err
	}
	s.f = f

	if err := s.load(); err != nil {
		s.Modified, s.Text = Epoch, ""
		return s, err
	}
	return s, nil
}

func (s *Snapshot) load() error {
	info, err := s.f.Stat()
	if err != nil {
		return err
	}
	b, err := io.ReadAll(s.f)
	if err != nil {
		return err
	}
	s.Modified = info.ModTime()
	s.Text = string(b)
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Unchanged reports whether text was already drawn on the same calendar day
// as now.
func (s *Snapshot) Unchanged(text string, now time.Time) bool {
	return sameDay(s.Modified.In(now.Location()), now) && s.Text == text
}

// Commit replaces the snapshot with text and stamps it with now.
func (s *Snapshot) Commit(text string, now time.Time) error {
	if s.f == nil {
		return errSnapshotClosed
	}
	if err := s.f.Truncate(0); err != nil {
		return err
	}
	if _, err := s.f.WriteAt([]byte(text), 0); err != nil {
		return err
	}
	if err := s.f.Sync(); err != nil {
		return err
	}
	if err := os.Chtimes(s.Path, now, now); err != nil {
		return err
	}
	s.Modified, s.Text = now, text
	return nil
}

// Close releases the snapshot file.
func (s *Snapshot) Close() error {
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}

// ShouldSkipRender reports whether text was already drawn today. When it
// was not, the snapshot is rewritten before returning false.
//
// Errors never turn a render into a skip: an unreadable snapshot counts as
// empty, and a failed rewrite is returned alongside false.
func ShouldSkipRender(path, text string, now time.Time) (bool, error) {
	s, loadErr := OpenSnapshot(path)
	defer s.Close()

	if loadErr == nil && s.Unchanged(text, now) {
		return true, nil
	}
	if err := s.Commit(text, now); err != nil {
		return false, err
	}
	return false, loadErr
}
