package catalog

import (
	"database/sql"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"

	"github.com/bodgit/monosprite/bitmap"
	"github.com/cespare/xxhash/v2"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// DB is a Catalog backed by an SQLite database.
type DB struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDB opens or creates the database in file.
func NewDB(file string, logger *zap.Logger) (*DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS bitmap (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, hash TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, pix BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{
		db:     db,
		logger: logger,
	}, nil
}

// Close closes the database.
func (db *DB) Close() error {
	return db.db.Close()
}

// Add stores b under name, replacing any existing entry. The hash
// identifies the source the bitmap was converted from; Import uses it to
// skip unchanged files.
func (db *DB) Add(name, hash string, b *bitmap.Bitmap) error {
	if !bitmap.Fits(b.Width, b.Height) {
		return bitmap.ErrBounds
	}
	if _, err := db.db.Exec("INSERT OR REPLACE INTO bitmap (name, hash, width, height, pix) VALUES (?, ?, ?, ?, ?)", name, hash, b.Width, b.Height, b.Pix[:b.PackedSize()]); err != nil {
		return err
	}
	return nil
}

// Hash returns the source hash stored for name, or an empty string if name
// is not present.
func (db *DB) Hash(name string) (string, error) {
	var hash string
	switch err := db.db.QueryRow("SELECT hash FROM bitmap WHERE name = ?", name).Scan(&hash); err {
	case sql.ErrNoRows:
		return "", nil
	case nil:
		return hash, nil
	default:
		return "", err
	}
}

// Lookup implements Catalog.
func (db *DB) Lookup(name string) (*bitmap.Bitmap, error) {
	var w, h int
	var pix []byte
	switch err := db.db.QueryRow("SELECT width, height, pix FROM bitmap WHERE name = ?", name).Scan(&w, &h, &pix); err {
	case sql.ErrNoRows:
		return nil, ErrNotFound
	case nil:
		if !bitmap.Fits(w, h) || len(pix) != bitmap.PackedSize(w, h) {
			return nil, fmt.Errorf("catalog: corrupt entry %q", name)
		}
		return &bitmap.Bitmap{Width: w, Height: h, Pix: pix}, nil
	default:
		return nil, err
	}
}

// Names returns every name in the catalog in alphabetical order.
func (db *DB) Names() ([]string, error) {
	rows, err := db.db.Query("SELECT name FROM bitmap ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Map loads the whole catalog into memory.
func (db *DB) Map() (Map, error) {
	names, err := db.Names()
	if err != nil {
		return nil, err
	}
	m := make(Map, len(names))
	for _, name := range names {
		if m[name], err = db.Lookup(name); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Read and convert an image file, returning the bitmap and a hash of the
// file contents.
func decodeFile(file string) (*bitmap.Bitmap, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	h := xxhash.New()
	m, _, err := image.Decode(io.TeeReader(f, h))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", file, err)
	}

	// Decoders needn't consume the whole file
	if _, err := io.Copy(h, f); err != nil {
		return nil, "", err
	}

	b, err := bitmap.FromImage(m)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", file, err)
	}

	return b, fmt.Sprintf("%016X", h.Sum64()), nil
}
