package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Store is the autosave slot for the current session.
type Store struct {
	Path string
	Now  func() time.Time
}

func clock(now func() time.Time) time.Time {
	if now != nil {
		return now()
	}
	return time.Now()
}

// Save stamps st with the current time and writes it.
func (s *Store) Save(st State) error {
	st.SavedAt = clock(s.Now)
	return WriteFile(s.Path, st)
}

// Load reads the last session. A missing file is ErrNoSession.
func (s *Store) Load() (State, error) {
	st, err := ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return State{}, ErrNoSession
	}
	return st, err
}

// LastSaved is the time of the last autosave, or zero if there is none.
func (s *Store) LastSaved() time.Time {
	st, err := s.Load()
	if err != nil {
		return time.Time{}
	}
	return st.SavedAt
}

func (s *Store) Clear() error {
	err := os.Remove(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Designs is a directory of named designs, one JSON file each.
type Designs struct {
	Dir string
	Now func() time.Time
}

const designExt = ".json"

func (d *Designs) path(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return filepath.Join(d.Dir, name+designExt), nil
}

func (d *Designs) SaveDesign(name string, st State) error {
	path, err := d.path(name)
	if err != nil {
		return err
	}
	st.SavedAt = clock(d.Now)
	return WriteFile(path, st)
}

func (d *Designs) LoadDesign(name string) (State, error) {
	path, err := d.path(name)
	if err != nil {
		return State{}, err
	}
	st, err := ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return State{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return st, err
}

// ListDesigns returns design names in sorted order. A missing directory
// holds no designs.
func (d *Designs) ListDesigns() ([]string, error) {
	entries, err := os.ReadDir(d.Dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || filepath.Ext(e.Name()) != designExt {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), designExt))
	}
	sort.Strings(names)
	return names, nil
}

func (d *Designs) DeleteDesign(name string) error {
	path, err := d.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	} else if err != nil {
		return err
	}
	return nil
}
