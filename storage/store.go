package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrBadName    = errors.New("invalid name")
)

// Store keeps all user data as JSON files under root/<user_id>/. Loads go
// through an explicit cache that is cleared on every write, so readers never
// see a stale document after a save.
type Store struct {
	root     string
	mux      sync.Mutex
	cache    map[string][]byte
	undo     map[string]undoEntry
	validate *validator.Validate
}

func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	v := validator.New()
	if err := v.RegisterValidation("iana_tz", func(fl validator.FieldLevel) bool {
		_, err := time.LoadLocation(fl.Field().String())
		return err == nil
	}); err != nil {
		return nil, err
	}

	return &Store{
		root:     root,
		cache:    make(map[string][]byte),
		undo:     make(map[string]undoEntry),
		validate: v,
	}, nil
}

// Users lists the user IDs known to the store, one directory per user.
func (s *Store) Users() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}
	var users []string
	for _, e := range entries {
		if e.IsDir() {
			users = append(users, e.Name())
		}
	}
	return users, nil
}

// checkName guards file names built from user-supplied identifiers.
func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\.`) {
		return fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return nil
}

func (s *Store) userFile(user, name string) string {
	return filepath.Join(s.root, user, name)
}

// loadJSON reads a user document into out, serving repeated reads from the
// cache. A missing file reports ErrNotFound.
func (s *Store) loadJSON(user, name string, out any) error {
	if err := checkName(user); err != nil {
		return err
	}
	path := s.userFile(user, name)

	s.mux.Lock()
	raw, ok := s.cache[path]
	s.mux.Unlock()

	if !ok {
		var err error
		raw, err = os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		if err != nil {
			return err
		}
		s.mux.Lock()
		s.cache[path] = raw
		s.mux.Unlock()
	}

	return json.Unmarshal(raw, out)
}

// saveJSON writes a user document and drops the cached copy.
func (s *Store) saveJSON(user, name string, in any) error {
	if err := checkName(user); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(s.root, user), 0o755); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return err
	}

	path := s.userFile(user, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return err
	}

	s.mux.Lock()
	delete(s.cache, path)
	s.mux.Unlock()
	return nil
}
