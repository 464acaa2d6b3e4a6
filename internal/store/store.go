// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	// ErrNotFound reports a read, write or delete against a missing file.
	ErrNotFound = errors.New("file not found")
	// ErrExists reports a create against a name already in use.
	ErrExists = errors.New("file already exists")
)

// file is the authoritative record for one name.
type file struct {
	content string
	modTime time.Time
}

// FileInfo describes one stored file for listings.
type FileInfo struct {
	Name    string    `json:"name"`
	Size    int       `json:"size"`
	ModTime time.Time `json:"modtime"`
}

// Directory is the authoritative owner of file content: a flat namespace of
// named files. The caches in front of it only mirror content for read
// acceleration and never mutate it.
type Directory struct {
	name  string
	files map[string]*file
	now   func() time.Time
}

// NewDirectory constructs an empty directory.
func NewDirectory(name string) *Directory {
	return &Directory{
		name:  name,
		files: make(map[string]*file),
		now:   time.Now,
	}
}

// Name returns the directory name.
func (d *Directory) Name() string {
	return d.name
}

// Create adds a new file. Creating an existing name fails with ErrExists;
// create and write are distinct primitives.
func (d *Directory) Create(name, content string) error {
	if _, ok := d.files[name]; ok {
		return fmt.Errorf("create %s: %w", name, ErrExists)
	}
	d.files[name] = &file{content: content, modTime: d.now()}
	return nil
}

// Read returns the content of name, or ErrNotFound.
func (d *Directory) Read(name string) (string, error) {
	f, ok := d.files[name]
	if !ok {
		return "", fmt.Errorf("read %s: %w", name, ErrNotFound)
	}
	return f.content, nil
}

// Write replaces the content of an existing file. Writing a missing name
// fails with ErrNotFound; it never creates.
func (d *Directory) Write(name, content string) error {
	f, ok := d.files[name]
	if !ok {
		return fmt.Errorf("write %s: %w", name, ErrNotFound)
	}
	f.content = content
	f.modTime = d.now()
	return nil
}

// Delete removes a file, or fails with ErrNotFound.
func (d *Directory) Delete(name string) error {
	if _, ok := d.files[name]; !ok {
		return fmt.Errorf("delete %s: %w", name, ErrNotFound)
	}
	delete(d.files, name)
	return nil
}

// Exists reports whether name is stored.
func (d *Directory) Exists(name string) bool {
	_, ok := d.files[name]
	return ok
}

// Len returns the number of stored files.
func (d *Directory) Len() int {
	return len(d.files)
}

// List returns the directory contents sorted by name.
func (d *Directory) List() []FileInfo {
	out := make([]FileInfo, 0, len(d.files))
	for name, f := range d.files {
		out = append(out, FileInfo{Name: name, Size: len(f.content), ModTime: f.modTime})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
