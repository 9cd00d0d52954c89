// Package accountstore implements per-account filesystem storage.
//
// Each account owns one directory named by its ID. The directory holds at
// most one file per Kind; names never come from request input, so no
// attacker-controlled path component ever reaches the filesystem.
package accountstore

import (
	"errors"
	"hash/fnv"
	"os"
	"path/filepath"
	"sync"

	"github.com/alliterative/accountd/pkg/identitypkg"
)

// Kind enumerates the file slots an account directory may contain.
type Kind string

const (
	// KindCode is the single-slot current login code record.
	KindCode Kind = "code"
	// KindLedger is the append-only ledger record, one signed amount per line.
	KindLedger Kind = "ledger"
)

// sessionsDir holds one marker file per processed payment session id.
const sessionsDir = "sessions"

var (
	// ErrNotFound indicates that the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID indicates a malformed account ID.
	ErrInvalidID = errors.New("invalid account id")
	// ErrInvalidKind indicates a file kind outside the allow-list.
	ErrInvalidKind = errors.New("invalid record kind")
	// ErrInvalidSessionID indicates a session id unsafe to use as a marker name.
	ErrInvalidSessionID = errors.New("invalid session id")
)

const lockStripes = 64

// Store provides scoped read, write and append primitives over a data
// directory. Mutating operations on one account are serialized by a striped
// per-account mutex so concurrent ledger appends cannot tear.
type Store struct {
	root  string
	locks [lockStripes]sync.Mutex
}

// New creates the data directory layout and returns a Store rooted at root.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(root, sessionsDir), 0o700); err != nil {
		return nil, err
	}

	return &Store{root: root}, nil
}

func (s *Store) lock(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id)) // The returned err is always nil.

	return &s.locks[h.Sum32()%lockStripes]
}

func (s *Store) path(id string, kind Kind) (string, error) {
	if !identitypkg.IsID(id) {
		return "", ErrInvalidID
	}

	if kind != KindCode && kind != KindLedger {
		return "", ErrInvalidKind
	}

	return filepath.Join(s.root, id, string(kind)), nil
}

// Ensure idempotently creates the namespace for the given account.
// Concurrent calls for the same account are safe.
func (s *Store) Ensure(id string) error {
	if !identitypkg.IsID(id) {
		return ErrInvalidID
	}

	return os.MkdirAll(filepath.Join(s.root, id), 0o700)
}

// Read returns the current content of the account's record.
func (s *Store) Read(id string, kind Kind) ([]byte, error) {
	p, err := s.path(id, kind)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return data, nil
}

// Write replaces the account's record with data. Used for the single-slot
// login code: every write invalidates whatever was there before.
func (s *Store) Write(id string, kind Kind, data []byte) error {
	p, err := s.path(id, kind)
	if err != nil {
		return err
	}

	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	return os.WriteFile(p, data, 0o600)
}

// Append adds one line to the account's record, creating it if absent.
// The line is written in a single O_APPEND write under the account lock, so a
// concurrent reader sees whole lines only.
func (s *Store) Append(id string, kind Kind, line []byte) error {
	p, err := s.path(id, kind)
	if err != nil {
		return err
	}

	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(p, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}

	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')

	if _, err = f.Write(buf); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// Remove deletes the account's record. Used to consume login codes.
func (s *Store) Remove(id string, kind Kind) error {
	p, err := s.path(id, kind)
	if err != nil {
		return err
	}

	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	err = os.Remove(p)
	if os.IsNotExist(err) {
		return ErrNotFound
	}

	return err
}

// ClaimSession records the payment session id as processed. It returns true
// exactly once per id: the exclusive create is the atomic first-claim that
// closes the duplicate-delivery race.
func (s *Store) ClaimSession(sessionID string) (bool, error) {
	if !validSessionID(sessionID) {
		return false, ErrInvalidSessionID
	}

	f, err := os.OpenFile(
		filepath.Join(s.root, sessionsDir, sessionID),
		os.O_CREATE|os.O_EXCL|os.O_WRONLY,
		0o600,
	)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}

		return false, err
	}

	return true, f.Close()
}

// validSessionID restricts marker names to the provider's session id
// character set. Anything else could escape the sessions directory.
func validSessionID(s string) bool {
	if len(s) == 0 || len(s) > 128 {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-':
		default:
			return false
		}
	}

	return true
}
