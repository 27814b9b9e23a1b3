/*
Package catalog implements the read-only table of named sprite bitmaps that
sprites are created from.

A Map is enough for tests and small programs. DB keeps the catalog in an
SQLite database and can populate it from a directory of images.
*/
package catalog

import (
	"errors"
	"sort"

	"github.com/bodgit/monosprite/bitmap"
)

// ErrNotFound is returned when a name is not in the catalog.
var ErrNotFound = errors.New("catalog: bitmap not found")

// Catalog looks up immutable bitmaps by name. Callers must not modify the
// returned bitmap.
type Catalog interface {
	Lookup(name string) (*bitmap.Bitmap, error)
}

// Map is an in-memory Catalog.
type Map map[string]*bitmap.Bitmap

// Lookup implements Catalog.
func (m Map) Lookup(name string) (*bitmap.Bitmap, error) {
	if b, ok := m[name]; ok {
		return b, nil
	}
	return nil, ErrNotFound
}

// Names returns the sorted names in m.
func (m Map) Names() []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
