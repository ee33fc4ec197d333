// Package storage persists designs: the autosaved session, named designs in
// a directory, design files in JSON or YAML, and compact share tokens.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"wireterm/internal/grid"
)

var (
	ErrNoSession = errors.New("no saved session")
	ErrBadName   = errors.New("invalid design name")
	ErrNotFound  = errors.New("design not found")
)

// State is the persisted form of a design.
type State struct {
	Objects grid.Collection `json:"objects" yaml:"objects"`
	Layers  []grid.Layer    `json:"layers,omitempty" yaml:"layers,omitempty"`
	Mode    string          `json:"mode,omitempty" yaml:"mode,omitempty"`
	SavedAt time.Time       `json:"savedAt" yaml:"savedAt"`
}

// Codec is the on-disk encoding of a State.
type Codec int

const (
	JSON Codec = iota
	YAML
)

// CodecFor picks YAML for .yaml and .yml files and JSON otherwise.
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

func (c Codec) Marshal(s State) ([]byte, error) {
	if c == YAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return append(data, '\n'), nil
}

func (c Codec) Unmarshal(data []byte) (State, error) {
	var s State
	var err error
	if c == YAML {
		err = yaml.Unmarshal(data, &s)
	} else {
		err = json.Unmarshal(data, &s)
	}
	if err != nil {
		return State{}, fmt.Errorf("decode design: %w", err)
	}
	return s, nil
}

// ReadFile loads a design file in the codec its extension implies.
func ReadFile(path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return State{}, err
	}
	return CodecFor(path).Unmarshal(data)
}

// WriteFile stores s at path, replacing any previous file.
func WriteFile(path string, s State) error {
	data, err := CodecFor(path).Marshal(s)
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
