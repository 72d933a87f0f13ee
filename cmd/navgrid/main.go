// Command navgrid builds the navigation grids of a house and prints a summary
// of its target distance fields.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/banshee-data/navgrid/internal/config"
	"github.com/banshee-data/navgrid/internal/fsutil"
	"github.com/banshee-data/navgrid/internal/house"
	"github.com/banshee-data/navgrid/internal/house/scene"
	"github.com/banshee-data/navgrid/internal/house/storage/sqlite"
	"github.com/banshee-data/navgrid/internal/monitoring"
	"github.com/banshee-data/navgrid/internal/security"
	"github.com/banshee-data/navgrid/internal/version"
)

const (
	houseFile = "house.json"
	meshFile  = "house.obj"
)

type options struct {
	houseDir   string
	categories string
	configPath string
	cacheDB    string
	cacheDir   string
	target     string
	allTargets bool
	seed       int64
	logLevel   string
	showVer    bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("navgrid", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.houseDir, "house", "", "House directory containing house.json and house.obj")
	fs.StringVar(&o.categories, "categories", "", "Path to ModelCategoryMapping.csv")
	fs.StringVar(&o.configPath, "config", "", "Grid config file (.json or .toml)")
	fs.StringVar(&o.cacheDB, "cache-db", "", "SQLite grid cache database")
	fs.StringVar(&o.cacheDir, "cache-dir", "", "Directory for per-house grid cache files (ignored with -cache-db)")
	fs.StringVar(&o.target, "target", "", "Target room type to activate after building")
	fs.BoolVar(&o.allTargets, "all-targets", false, "Build the distance field of every desired room type")
	fs.Int64Var(&o.seed, "seed", 0, "Random seed for location sampling (0 uses the clock)")
	fs.StringVar(&o.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.BoolVar(&o.showVer, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if o.showVer {
		return o, nil
	}
	if o.houseDir == "" {
		return nil, errors.New("-house is required")
	}
	if o.categories == "" {
		return nil, errors.New("-categories is required")
	}
	return o, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid -log-level: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// housePaths resolves the input files, rejecting names that escape the house
// directory.
func housePaths(dir, categories string) (scene.Paths, error) {
	p := scene.Paths{
		House:      filepath.Join(dir, houseFile),
		Mesh:       filepath.Join(dir, meshFile),
		Categories: categories,
	}
	for _, f := range []string{p.House, p.Mesh} {
		if err := security.ValidatePathWithinDirectory(f, dir); err != nil {
			return p, err
		}
	}
	return p, nil
}

// openStore returns the snapshot store selected by the flags, a close func,
// or a nil store when caching is off.
func openStore(o *options, houseID string) (house.SnapshotStore, func(), error) {
	switch {
	case o.cacheDB != "":
		s, err := sqlite.Open(o.cacheDB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open cache database: %w", err)
		}
		return s, func() { s.Close() }, nil
	case o.cacheDir != "":
		p := filepath.Join(o.cacheDir, security.SanitizeFilename(houseID)+".navgrid")
		if err := security.ValidateCachePath(p, []string{o.cacheDir}); err != nil {
			return nil, nil, err
		}
		return house.NewFileCache(fsutil.OSFileSystem{}, p), func() {}, nil
	}
	return nil, func() {}, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if o.showVer {
		fmt.Fprintln(stdout, version.String())
		return nil
	}

	logger, err := newLogger(o.logLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()
	monitoring.UseZap(logger)

	cfg := config.DefaultGridConfig()
	if o.configPath != "" {
		if cfg, err = config.LoadGridConfig(o.configPath); err != nil {
			return err
		}
	}

	paths, err := housePaths(o.houseDir, o.categories)
	if err != nil {
		return err
	}
	sc, err := scene.Load(fsutil.OSFileSystem{}, paths, scene.LoadOptions{
		RobotHeight:  cfg.GetRobotHeight(),
		CarpetHeight: cfg.GetCarpetHeight(),
	})
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(o, sc.ID)
	if err != nil {
		return err
	}
	defer closeStore()

	seed := o.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	h, err := house.New(sc, house.Options{
		Config: cfg,
		Store:  store,
		Rand:   rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		return err
	}

	if o.allTargets {
		if err := h.CacheAllTargets(); err != nil {
			return err
		}
	}
	if o.target != "" {
		if _, err := h.SetTargetRoom(o.target); err != nil {
			return err
		}
	}
	return printSummary(stdout, h)
}

func printSummary(w io.Writer, h *house.House) error {
	active := h.TargetRoomType()
	m := h.Mapper()
	fmt.Fprintln(w, version.String())
	fmt.Fprintf(w, "house %s: resolution=%d cell=%.3fm movable=%d\n",
		h.Scene.ID, m.N, m.CellSize(), h.Movability().Count(func(v uint8) bool { return v > 0 }))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TARGET\tACTIVE\tFRONTIER\tCONNECTED\tMAX_DIST")
	for _, t := range h.CachedTargets() {
		rec, _ := h.CachedField(t)
		mark := ""
		if t == active {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n", t, mark, len(rec.Frontier), len(rec.ConnectedCoors), rec.MaxConnDist)
	}
	return tw.Flush()
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "navgrid: %v\n", err)
		os.Exit(1)
	}
}
