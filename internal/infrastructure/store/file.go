package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/arianatravel/backoffice/internal/core/domain"
)

// fileRecord is the on-disk layout: two named slots, written together so
// a reader never observes a credential without its user.
type fileRecord struct {
	Credential *domain.Credential `json:"credential,omitempty"`
	User       *domain.User       `json:"user,omitempty"`
}

// File is a SessionStore persisted as a single JSON file with 0600
// permissions. Writes go through a temp file + rename.
type File struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewFile(path string) *File {
	return &File{path: path, now: time.Now}
}

// DefaultSessionPath returns the session file location under the user's
// home directory.
func DefaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".backoffice-session.json"
	}
	return filepath.Join(home, ".backoffice", "session.json")
}

func (f *File) Save(_ context.Context, token string, user domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := user
	return f.write(fileRecord{
		Credential: &domain.Credential{Token: token, IssuedAt: f.now().UTC()},
		User:       &u,
	})
}

func (f *File) Load(_ context.Context) (*domain.Credential, *domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, err := f.read()
	if err != nil {
		return nil, nil, err
	}
	if rec.Credential == nil || rec.User == nil {
		return nil, nil, nil
	}
	return rec.Credential, rec.User, nil
}

func (f *File) UpdateUser(_ context.Context, user domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, err := f.read()
	if err != nil {
		return err
	}
	if rec.Credential == nil {
		return nil
	}
	u := user
	rec.User = &u
	return f.write(rec)
}

func (f *File) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session file: %w", err)
	}
	return nil
}

func (f *File) read() (fileRecord, error) {
	var rec fileRecord
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return rec, nil
		}
		return rec, fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return fileRecord{}, fmt.Errorf("decode session file: %w", err)
	}
	return rec, nil
}

func (f *File) write(rec fileRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}
