package store

import (
	"fmt"

	"github.com/hance08/tally/internal/model"
)

// FileStore keeps a single ledger document in a JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

// Load reads the document. A missing file yields an empty document. A file
// that can not be read or parsed also yields an empty document, together
// with an error wrapping ErrUnreadable and the cause.
func (s *FileStore) Load() (model.Document, error) {
	unlock := lockPath(s.path)
	defer unlock()
	return s.load()
}

// load must be called with the path lock held.
func (s *FileStore) load() (model.Document, error) {
	data, modTime, exists, err := readFile(s.path)
	if !exists {
		return model.NewDocument(), nil
	}
	if err != nil {
		return model.NewDocument(), unreadable(s.path, "", err)
	}

	doc, err := DecodeDocument(data, modTime)
	if err != nil {
		moved, qErr := quarantine(s.path)
		if qErr != nil {
			return model.NewDocument(), unreadable(s.path, "", fmt.Errorf("%w (move aside failed: %v)", err, qErr))
		}
		return model.NewDocument(), unreadable(s.path, moved, err)
	}
	return doc, nil
}

// Save replaces the file with doc in one rename.
func (s *FileStore) Save(doc model.Document) error {
	unlock := lockPath(s.path)
	defer unlock()
	return s.save(doc)
}

// Update re-reads the file under the path lock, so a document changed by
// another FileStore on the same path since this one last loaded is the one
// fn builds on. A file that can not be read fails the update.
func (s *FileStore) Update(fn func(model.Document) (model.Document, error)) (model.Document, error) {
	unlock := lockPath(s.path)
	defer unlock()

	cur, err := s.load()
	if err != nil {
		return model.Document{}, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	next, err := fn(cur)
	if err != nil {
		return model.Document{}, err
	}
	if err := s.save(next); err != nil {
		return model.Document{}, err
	}
	return next.Clone(), nil
}

func (s *FileStore) save(doc model.Document) error {
	data, err := EncodeDocument(doc)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrWriteFailed, err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
