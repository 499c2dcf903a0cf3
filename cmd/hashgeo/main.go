// hashgeo builds, stores and inspects hashed detector geometries.
//
// Commands:
//
//	probe           hash the ideal IC86 geometry and print a few lookups
//	save <name>     hash IC86 and save the snapshot to the configured store
//	inspect <name>  load a snapshot and describe it
//	list [prefix]   list snapshots in the configured store
//
// Configuration is read from --config or $HASHGEO_CONFIG (YAML); flags
// override file values.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/hupe1980/hashgeo"
	"github.com/hupe1980/hashgeo/blobstore"
	"github.com/hupe1980/hashgeo/topology"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("error:"), err)
		os.Exit(1)
	}
}

// errUsage is returned for malformed command lines.
var errUsage = errors.New("usage")

type flags struct {
	config      string
	backend     string
	root        string
	compression string
	logLevel    string
	logFormat   string
	precompute  bool
	workers     int
}

func (f *flags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.config, "config", "c", "", "path to YAML config file (default: $"+configEnv+")")
	fs.StringVar(&f.backend, "store", "", "store backend: memory, local, s3, minio")
	fs.StringVar(&f.root, "root", "", "root directory of the local store")
	fs.StringVar(&f.compression, "compression", "", "snapshot compression: none, lz4, zstd")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")
	fs.BoolVar(&f.precompute, "precompute", false, "precompute all pairwise distances")
	fs.IntVar(&f.workers, "workers", 0, "precompute workers (0 = GOMAXPROCS)")
}

// apply overrides cfg with every flag set on the command line.
func (f *flags) apply(fs *pflag.FlagSet, cfg *Config) {
	if fs.Changed("store") {
		cfg.Store.Backend = f.backend
	}
	if fs.Changed("root") {
		cfg.Store.Local.Root = f.root
	}
	if fs.Changed("compression") {
		cfg.Snapshot.Compression = f.compression
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
	if fs.Changed("precompute") {
		cfg.Distances.Precompute = f.precompute
	}
	if fs.Changed("workers") {
		cfg.Distances.Workers = f.workers
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var f flags
	fs := pflag.NewFlagSet("hashgeo", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	f.register(fs)
	fs.BoolP("help", "h", false, "show help")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, fs)
			return nil
		}
		return err
	}
	if help, _ := fs.GetBool("help"); help {
		printHelp(stderr, fs)
		return nil
	}

	rest := fs.Args()
	if len(rest) == 0 {
		printHelp(stderr, fs)
		return fmt.Errorf("%w: missing command", errUsage)
	}

	cfg, err := LoadConfig(f.config)
	if err != nil {
		return err
	}
	f.apply(fs, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.Logger(stderr)
	if err != nil {
		return err
	}

	a := &app{cfg: cfg, logger: logger, out: printer{w: stdout}}

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "probe":
		return a.probe()
	case "save":
		name, err := oneArg(cmd, cmdArgs)
		if err != nil {
			return err
		}
		return a.save(ctx, name)
	case "inspect":
		name, err := oneArg(cmd, cmdArgs)
		if err != nil {
			return err
		}
		return a.inspect(ctx, name)
	case "list":
		if len(cmdArgs) > 1 {
			return fmt.Errorf("%w: list takes at most one prefix", errUsage)
		}
		var prefix string
		if len(cmdArgs) == 1 {
			prefix = cmdArgs[0]
		}
		return a.list(ctx, prefix)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func oneArg(cmd string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: %s takes exactly one snapshot name", errUsage, cmd)
	}
	return args[0], nil
}

type app struct {
	cfg    *Config
	logger *hashgeo.Logger
	out    printer
}

func (a *app) build() (*hashgeo.HashedGeometry, error) {
	return hashgeo.New(topology.BuildIC86Geometry(), a.cfg.Options(a.logger)...)
}

// probe hashes IC86 and prints the first two keys, the position of hash 0
// and the distance between hashes 0 and 1.
func (a *app) probe() error {
	geo, err := a.build()
	if err != nil {
		return err
	}

	k0, err := geo.IdentifierFromHash(0)
	if err != nil {
		return err
	}
	k1, err := geo.IdentifierFromHash(1)
	if err != nil {
		return err
	}
	p0, err := geo.PositionFromHash(0)
	if err != nil {
		return err
	}
	d01, err := geo.DistanceBetween(0, 1)
	if err != nil {
		return err
	}
	fp, err := geo.Fingerprint()
	if err != nil {
		return err
	}

	a.out.title("IC86 geometry: %s modules", humanize.Comma(int64(geo.Size())))
	a.out.field("hash 0", k0)
	a.out.field("hash 1", k1)
	a.out.field("position 0", p0)
	a.out.field("distance", fmt.Sprintf("%.3f m", d01))
	a.out.field("fingerprint", fp.Short())
	return nil
}

func (a *app) save(ctx context.Context, name string) error {
	c, err := a.cfg.Compression()
	if err != nil {
		return err
	}
	store, err := a.cfg.OpenStore(ctx)
	if err != nil {
		return err
	}

	geo, err := a.build()
	if err != nil {
		return err
	}
	if err := geo.Save(ctx, store, name, c); err != nil {
		return err
	}

	size, err := blobSize(ctx, store, name)
	if err != nil {
		return err
	}
	a.out.success("saved %s (%s modules, %s, %s)", bold(name),
		humanize.Comma(int64(geo.Size())), humanize.Bytes(uint64(size)), c)
	return nil
}

func (a *app) inspect(ctx context.Context, name string) error {
	store, err := a.cfg.OpenStore(ctx)
	if err != nil {
		return err
	}

	geo, err := hashgeo.Load(ctx, store, name, a.cfg.Options(a.logger)...)
	if err != nil {
		return err
	}
	size, err := blobSize(ctx, store, name)
	if err != nil {
		return err
	}
	fp, err := geo.Fingerprint()
	if err != nil {
		return err
	}

	a.out.title("%s", name)
	a.out.field("size", humanize.Bytes(uint64(size)))
	a.out.field("modules", humanize.Comma(int64(geo.Size())))
	a.out.field("fingerprint", fp)
	a.out.field("icetop", geo.Select(topology.IsIceTop).Cardinality())
	a.out.field("deepcore", geo.Select(topology.IsDeepCore).Cardinality())

	if err := geo.VerifyAgainst(topology.BuildIC86Geometry()); err != nil {
		a.out.warn("not ideal IC86: %v", err)
	} else {
		a.out.success("matches ideal IC86")
	}
	return nil
}

func (a *app) list(ctx context.Context, prefix string) error {
	store, err := a.cfg.OpenStore(ctx)
	if err != nil {
		return err
	}
	names, err := store.List(ctx, prefix)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		a.out.line("%s", dim("no snapshots"))
		return nil
	}
	for _, name := range names {
		size, err := blobSize(ctx, store, name)
		if err != nil {
			return err
		}
		a.out.line("%-40s %s", name, humanize.Bytes(uint64(size)))
	}
	return nil
}

func blobSize(ctx context.Context, store blobstore.BlobStore, name string) (int64, error) {
	b, err := store.Open(ctx, name)
	if err != nil {
		return 0, err
	}
	defer func() { _ = b.Close() }()
	return b.Size(), nil
}

func printHelp(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, `hashgeo builds, stores and inspects hashed detector geometries.

Usage:
  hashgeo [flags] <command> [args]

Commands:
  probe           hash the ideal IC86 geometry and print a few lookups
  save <name>     hash IC86 and save the snapshot to the configured store
  inspect <name>  load a snapshot and describe it
  list [prefix]   list snapshots in the configured store

Examples:
  hashgeo probe
  hashgeo --store local --root ./data save ic86.hgeo
  hashgeo --config hashgeo.yaml inspect ic86.hgeo

Flags:
`)
	fs.PrintDefaults()
}
