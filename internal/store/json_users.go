package store

import (
	"errors"
	"fmt"
	"net/url"
	"slices"

	"github.com/hance08/tally/internal/model"
)

// UserFileStore keeps every user's ledger in one JSON file, as a mapping of
// username to credential and document. Each operation re-reads the file
// under the path lock, so saving one user never discards another's update.
type UserFileStore struct {
	path string
}

func NewUserFileStore(path string) *UserFileStore {
	return &UserFileStore{path: path}
}

func (s *UserFileStore) Path() string {
	return s.path
}

// read must be called with the path lock held. A parse failure moves the
// file aside and returns an empty mapping along with an ErrUnreadable error.
func (s *UserFileStore) read() (map[string]userRecord, error) {
	data, _, exists, err := readFile(s.path)
	if !exists {
		return make(map[string]userRecord), nil
	}
	if err != nil {
		return nil, unreadable(s.path, "", err)
	}

	users, err := decodeUsers(data)
	if err != nil {
		moved, qErr := quarantine(s.path)
		if qErr != nil {
			return nil, unreadable(s.path, "", fmt.Errorf("%w (move aside failed: %v)", err, qErr))
		}
		return make(map[string]userRecord), unreadable(s.path, moved, err)
	}
	return users, nil
}

// update runs fn on the current mapping and writes the result back.
// A mapping recovered from a corrupt file (moved aside) is usable; a file
// that can not be read at all blocks the write.
func (s *UserFileStore) update(fn func(users map[string]userRecord) error) error {
	unlock := lockPath(s.path)
	defer unlock()

	users, err := s.read()
	if users == nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if err := fn(users); err != nil {
		return err
	}

	return s.write(users)
}

// write must be called with the path lock held.
func (s *UserFileStore) write(users map[string]userRecord) error {
	data, err := encodeUsers(users)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrWriteFailed, err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

func (s *UserFileStore) CreateUser(name, credential string) error {
	return s.update(func(users map[string]userRecord) error {
		if _, ok := users[name]; ok {
			return fmt.Errorf("%w: %s", ErrUserExists, name)
		}
		users[name] = userRecord{credential: credential, doc: model.NewDocument()}
		return nil
	})
}

func (s *UserFileStore) GetUser(name string) (*model.User, error) {
	unlock := lockPath(s.path)
	defer unlock()

	users, err := s.read()
	if err != nil {
		return nil, err
	}
	u, ok := users[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, name)
	}
	return &model.User{Name: name, Credential: u.credential}, nil
}

func (s *UserFileStore) UpdateCredential(name, credential string) error {
	return s.update(func(users map[string]userRecord) error {
		u, ok := users[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUserNotFound, name)
		}
		if u.broken != nil {
			return fmt.Errorf("%w: %w", ErrWriteFailed, unreadable(s.path, "", u.broken))
		}
		u.credential = credential
		users[name] = u
		return nil
	})
}

// ListUsers returns the usernames in sorted order.
func (s *UserFileStore) ListUsers() ([]string, error) {
	unlock := lockPath(s.path)
	defer unlock()

	users, err := s.read()
	if err != nil && !errors.Is(err, ErrUnreadable) {
		return nil, err
	}
	names := make([]string, 0, len(users))
	for name := range users {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, err
}

func (s *UserFileStore) Ledger(name string) Repository {
	return &userFileLedger{store: s, name: name}
}

type userFileLedger struct {
	store *UserFileStore
	name  string
}

// Load returns the user's document. A ledger entry that does not decode is
// written to its own <path>.<user>.corrupt file and replaced by an empty
// ledger; the other users and the credential are kept.
func (l *userFileLedger) Load() (model.Document, error) {
	unlock := lockPath(l.store.path)
	defer unlock()

	users, err := l.store.read()
	if err != nil {
		return model.NewDocument(), err
	}
	u, ok := users[l.name]
	if !ok {
		return model.NewDocument(), fmt.Errorf("%w: %s", ErrUserNotFound, l.name)
	}
	if u.broken == nil {
		return u.doc, nil
	}

	moved, err := setAside(l.store.path+"."+url.PathEscape(l.name)+".corrupt", u.raw)
	if err != nil {
		return model.NewDocument(), unreadable(l.store.path, "", fmt.Errorf("%w (move aside failed: %v)", u.broken, err))
	}
	users[l.name] = userRecord{credential: u.credential, doc: model.NewDocument()}
	if err := l.store.write(users); err != nil {
		return model.NewDocument(), unreadable(l.store.path, moved, fmt.Errorf("%w (reset failed: %v)", u.broken, err))
	}
	return model.NewDocument(), unreadable(l.store.path, moved, u.broken)
}

func (l *userFileLedger) Save(doc model.Document) error {
	_, err := l.Update(func(model.Document) (model.Document, error) {
		return doc, nil
	})
	return err
}

func (l *userFileLedger) Update(fn func(model.Document) (model.Document, error)) (model.Document, error) {
	var next model.Document
	err := l.store.update(func(users map[string]userRecord) error {
		u, ok := users[l.name]
		if !ok {
			return fmt.Errorf("%w: %w: %s", ErrWriteFailed, ErrUserNotFound, l.name)
		}
		if u.broken != nil {
			return fmt.Errorf("%w: %w", ErrWriteFailed, unreadable(l.store.path, "", u.broken))
		}

		doc, err := fn(u.doc.Clone())
		if err != nil {
			return err
		}
		next = doc.Clone()
		u.doc = doc.Clone()
		users[l.name] = u
		return nil
	})
	if err != nil {
		return model.Document{}, err
	}
	return next, nil
}
