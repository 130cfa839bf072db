// Package staging lists the holding area for newly arrived feed files.
//
// The staging area is a local directory of immutable input files. List
// filters by glob pattern and returns descriptors ordered newest-first
// by modification time, so that combined with the store's last-writer-
// wins merge an older duplicate file cannot silently overwrite a value
// supplied by a newer one. Files with identical modification times are
// tie-broken by name descending; the ordering is total and fixed.
package staging

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"
)

// ErrNotFound indicates the staging directory itself does not exist.
// An empty match list is not an error; a missing holding area is.
var ErrNotFound = errors.New("staging area not found")

// File describes one staged input file.
type File struct {
	Name    string    // base name, e.g. "UCL_champions_league_matches.csv"
	Path    string    // absolute or caller-relative path for opening
	Size    int64     // bytes
	ModTime time.Time // last modification time, drives processing order
}

// Dir is a directory-backed staging source.
type Dir struct {
	path string
}

// NewDir creates a staging source over the given directory.
// The directory is not required to exist until List is called.
func NewDir(path string) *Dir {
	return &Dir{path: path}
}

// Path returns the staging directory path.
func (d *Dir) Path() string {
	return d.path
}

// List returns descriptors for every regular file whose base name
// matches the glob pattern, ordered by ModTime descending then Name
// descending. Returns an error wrapping ErrNotFound if the staging
// directory does not exist or is not a directory. An empty result is
// returned as an empty slice, not nil.
func (d *Dir) List(pattern string) ([]File, error) {
	info, err := os.Stat(d.path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, d.path)
	}
	if err != nil {
		return nil, fmt.Errorf("stat staging area %s: %w", d.path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNotFound, d.path)
	}

	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, fmt.Errorf("read staging area %s: %w", d.path, err)
	}

	files := []File{}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		ok, err := path.Match(pattern, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if !ok {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			// Entry vanished between ReadDir and Info; skip it.
			continue
		}
		files = append(files, File{
			Name:    entry.Name(),
			Path:    filepath.Join(d.path, entry.Name()),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if !files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].ModTime.After(files[j].ModTime)
		}
		return files[i].Name > files[j].Name
	})

	return files, nil
}
