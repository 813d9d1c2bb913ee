package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// readFile returns the file content and modification time. exists is false
// when the file is absent, which is not an error.
func readFile(path string) (data []byte, modTime time.Time, exists bool, err error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, true, err
	}
	if info.IsDir() {
		return nil, time.Time{}, true, fmt.Errorf("%s is a directory", path)
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, true, err
	}
	return data, info.ModTime(), true, nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it over path, so readers see either the old or the new content.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("can not create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("can not create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("can not write temporary file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("can not sync temporary file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("can not close temporary file: %w", err)
	}
	if err = os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("can not set file mode: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("can not replace %s: %w", path, err)
	}
	return nil
}

// quarantine moves an unparsable file aside so the next save can not
// overwrite the only copy. Earlier copies are never replaced: the target is
// path.corrupt, then path.corrupt.1, path.corrupt.2 and so on.
func quarantine(path string) (string, error) {
	target, err := freeName(path + ".corrupt")
	if err != nil {
		return "", err
	}
	if err := os.Rename(path, target); err != nil {
		return "", err
	}
	return target, nil
}

// setAside writes data to a new file named after base, never replacing an
// existing one, and returns its name.
func setAside(base string, data []byte) (string, error) {
	target, err := freeName(base)
	if err != nil {
		return "", err
	}
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(target)
		return "", err
	}
	return target, f.Close()
}

const maxAsideCopies = 1000

func freeName(base string) (string, error) {
	for i := 0; i < maxAsideCopies; i++ {
		name := base
		if i > 0 {
			name = fmt.Sprintf("%s.%d", base, i)
		}
		_, err := os.Lstat(name)
		if errors.Is(err, fs.ErrNotExist) {
			return name, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("too many copies of %s already set aside", base)
}

func unreadable(path string, moved string, cause error) error {
	if moved != "" {
		return fmt.Errorf("%w: %s (moved to %s): %w", ErrUnreadable, path, moved, cause)
	}
	return fmt.Errorf("%w: %s: %w", ErrUnreadable, path, cause)
}
