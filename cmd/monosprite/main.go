package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/bodgit/monosprite/bundle"
	"github.com/bodgit/monosprite/catalog"
	"github.com/bodgit/monosprite/config"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultDB = "monosprite.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(verbose bool, level string) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(l)
	cfg.DisableCaller = true
	return cfg.Build()
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if file := c.String("config"); file != "" {
		var err error
		if cfg, err = config.LoadFile(file); err != nil {
			return nil, err
		}
	}
	if c.IsSet("db") || cfg.Database == "" {
		cfg.Database = c.String("db")
	}
	if c.IsSet("backend") {
		cfg.Display.Backend = c.String("backend")
	}
	if c.IsSet("bundle") {
		cfg.Bundle = c.String("bundle")
	}
	return cfg, cfg.Validate()
}

func setup(c *cli.Context) (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(c.Bool("verbose"), cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// Open whichever catalog the configuration names; a bundle takes
// precedence over the database.
func openCatalog(cfg *config.Config, logger *zap.Logger) (catalog.Catalog, []string, func() error, error) {
	if cfg.Bundle != "" {
		data, err := os.ReadFile(cfg.Bundle)
		if err != nil {
			return nil, nil, nil, err
		}
		b := bundle.New()
		if err := b.UnmarshalBinary(data); err != nil {
			return nil, nil, nil, fmt.Errorf("%s: %w", cfg.Bundle, err)
		}
		return b, nil, func() error { return nil }, nil
	}

	db, err := catalog.NewDB(cfg.Database, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	names, err := db.Names()
	if err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	return db, names, db.Close, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "monosprite"
	app.Usage = "Monochrome paged display sprite compositor"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"MONOSPRITE_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to sprite database",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			EnvVars: []string{"MONOSPRITE_CONFIG"},
			Usage:   "path to YAML configuration",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "import",
			Usage:       "Import images into the sprite database",
			Description: "Every PNG, GIF, JPEG or MBM file under DIRECTORY is reduced to one bit per pixel and stored under its base name.",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				cfg, logger, err := setup(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer logger.Sync()

				db, err := catalog.NewDB(cfg.Database, logger)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				n, err := db.Import(context.Background(), c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				logger.Info("import complete", zap.Int("updated", n))

				return nil
			},
		},
		{
			Name:      "bundle",
			Usage:     "Export the sprite database as a bundle file",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				file := bundle.Filename
				if c.NArg() > 0 {
					file = c.Args().First()
				}

				cfg, logger, err := setup(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer logger.Sync()

				db, err := catalog.NewDB(cfg.Database, logger)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				m, err := db.Map()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				b := bundle.New()
				for _, name := range m.Names() {
					if err := b.Set(name, m[name]); err != nil {
						return cli.NewExitError(fmt.Errorf("%s: %w", name, err), 1)
					}
				}

				data, err := b.MarshalBinary()
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if err := os.WriteFile(file, data, 0o644); err != nil {
					return cli.NewExitError(err, 1)
				}
				logger.Info("bundle written", zap.String("file", file), zap.Int("sprites", b.Length()))

				return nil
			},
		},
		{
			Name:      "run",
			Usage:     "Animate sprites on a display",
			ArgsUsage: "[SPRITE...]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "backend",
					Usage: "display backend: term, ws, window or none",
				},
				&cli.StringFlag{
					Name:  "bundle",
					Usage: "read sprites from a bundle file instead of the database",
				},
				&cli.IntFlag{
					Name:  "count",
					Value: 4,
					Usage: "number of sprites to animate",
				},
				&cli.Int64Flag{
					Name:  "seed",
					Usage: "random seed",
				},
				&cli.DurationFlag{
					Name:  "duration",
					Usage: "stop after this long, 0 runs until interrupted",
				},
			},
			Action: func(c *cli.Context) error {
				cfg, logger, err := setup(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer logger.Sync()

				cat, names, closeCatalog, err := openCatalog(cfg, logger)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closeCatalog()

				if c.NArg() > 0 {
					names = c.Args().Slice()
				}

				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
				defer stop()

				opts := runOptions{
					names:    names,
					count:    c.Int("count"),
					seed:     uint64(c.Int64("seed")),
					duration: c.Duration("duration"),
				}
				if err := run(ctx, cfg, cat, logger, opts); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "snapshot",
			Usage:     "Render sprites at random positions to a PNG file",
			ArgsUsage: "FILE [SPRITE...]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "bundle",
					Usage: "read sprites from a bundle file instead of the database",
				},
				&cli.Int64Flag{
					Name:  "seed",
					Usage: "random seed",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				cfg, logger, err := setup(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer logger.Sync()

				cat, names, closeCatalog, err := openCatalog(cfg, logger)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closeCatalog()

				if c.NArg() > 1 {
					names = c.Args().Tail()
				}

				f, err := os.Create(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				if err := snapshot(f, cfg, cat, logger, names, uint64(c.Int64("seed"))); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
