package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/monosprite/bitmap"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const importWorkers = 4

var imageExtensions = map[string]struct{}{
	".gif":  {},
	".jpeg": {},
	".jpg":  {},
	".mbm":  {},
	".png":  {},
}

type importResult struct {
	name, hash string
	bitmap     *bitmap.Bitmap
}

// NameFor returns the catalog name used for an image file: its base name
// without the extension.
func NameFor(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}

func findImages(ctx context.Context, base string, out chan<- string) error {
	defer close(out)
	return filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Ignore any hidden files or directories
		if info.Name()[0] == '.' && file != base {
			if info.Mode().IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		if _, ok := imageExtensions[strings.ToLower(filepath.Ext(file))]; !ok {
			return nil
		}

		select {
		case out <- file:
		case <-ctx.Done():
			return ctx.Err()
		}

		return nil
	})
}

func (db *DB) imageWorker(ctx context.Context, in <-chan string, out chan<- importResult) error {
	for file := range in {
		b, hash, err := decodeFile(file)
		if err != nil {
			if errors.Is(err, bitmap.ErrBounds) {
				db.logger.Info("image too large, skipping", zap.String("file", file))
				continue
			}
			return err
		}

		select {
		case out <- importResult{name: NameFor(file), hash: hash, bitmap: b}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Import walks dir converting every image found into a bitmap stored under
// its base name. Files whose contents have not changed since the last
// import are left alone. It returns the number of bitmaps added or updated.
func (db *DB) Import(ctx context.Context, dir string) (int, error) {
	base, err := filepath.Abs(dir)
	if err != nil {
		return 0, err
	}

	g, ctx := errgroup.WithContext(ctx)

	files := make(chan string)
	g.Go(func() error {
		return findImages(ctx, base, files)
	})

	results := make(chan importResult)
	workers, wctx := errgroup.WithContext(ctx)
	for i := 0; i < importWorkers; i++ {
		workers.Go(func() error {
			return db.imageWorker(wctx, files, results)
		})
	}
	g.Go(func() error {
		defer close(results)
		return workers.Wait()
	})

	// SQLite writes happen on this goroutine only
	var n int
	for r := range results {
		if err != nil {
			continue
		}

		var hash string
		if hash, err = db.Hash(r.name); err != nil {
			continue
		}
		if hash == r.hash {
			db.logger.Debug("unchanged", zap.String("name", r.name))
			continue
		}

		if err = db.Add(r.name, r.hash, r.bitmap); err != nil {
			continue
		}
		db.logger.Info("imported", zap.String("name", r.name), zap.Int("width", r.bitmap.Width), zap.Int("height", r.bitmap.Height))
		n++
	}

	if werr := g.Wait(); err == nil {
		err = werr
	}

	return n, err
}
