package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"capitol/constellation/internal/config"
	"capitol/constellation/internal/dataset"
	"capitol/constellation/internal/db"
	"capitol/constellation/internal/engine"
	"capitol/constellation/internal/graph"
)

const (
	envData       = "CONSTELLATION_DATA"
	defaultDBName = ".constellation.db"
	configName    = "constellation.toml"
)

// data file names looked for when walking up from the working directory
var dataFileNames = []string{"constellation.yaml", "constellation.yml", "constellation.json"}

var (
	dataPath     string
	dbPath       string
	configPath   string
	logLevel     string
	dropDangling bool
)

var rootCmd = &cobra.Command{
	Use:           "constellation",
	Short:         "Stakeholder relationship graph analysis",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(logLevel)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Path to a .json/.yaml network file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to a .constellation.db SQLite database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a constellation.toml config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&dropDangling, "drop-dangling", false, "Skip edges that reference missing nodes instead of failing")
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
	return nil
}

type sourceKind int

const (
	sourceFile sourceKind = iota
	sourceDB
)

// Source is where the network is loaded from
type Source struct {
	Kind sourceKind
	Path string
}

func sourceFor(path string) Source {
	if strings.EqualFold(filepath.Ext(path), ".db") {
		return Source{Kind: sourceDB, Path: path}
	}
	return Source{Kind: sourceFile, Path: path}
}

// DiscoverSource finds the network using priority: env > --data > --db > walk-up
func DiscoverSource() (Source, error) {
	// 1. Environment variable
	if envPath := os.Getenv(envData); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return sourceFor(envPath), nil
		}
	}

	// 2. CLI flags
	if dataPath != "" {
		if _, err := os.Stat(dataPath); err != nil {
			return Source{}, fmt.Errorf("data file not found at --data path: %s", dataPath)
		}
		return Source{Kind: sourceFile, Path: dataPath}, nil
	}
	if dbPath != "" {
		if _, err := os.Stat(dbPath); err != nil {
			return Source{}, fmt.Errorf("database not found at --db path: %s", dbPath)
		}
		return Source{Kind: sourceDB, Path: dbPath}, nil
	}

	// 3. Walk up from CWD; a data file beats a database in the same directory
	dir, err := os.Getwd()
	if err == nil {
		for {
			for _, name := range dataFileNames {
				candidate := filepath.Join(dir, name)
				if _, err := os.Stat(candidate); err == nil {
					return Source{Kind: sourceFile, Path: candidate}, nil
				}
			}
			candidate := filepath.Join(dir, defaultDBName)
			if _, err := os.Stat(candidate); err == nil {
				return Source{Kind: sourceDB, Path: candidate}, nil
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	return Source{}, fmt.Errorf("no network found (set %s, use --data or --db, or run from a directory containing constellation.yaml or %s)", envData, defaultDBName)
}

// LoadSnapshot discovers the source and builds a validated snapshot from it
func LoadSnapshot() (*graph.Snapshot, error) {
	src, err := DiscoverSource()
	if err != nil {
		return nil, err
	}

	var doc *dataset.Document
	switch src.Kind {
	case sourceDB:
		d, err := db.OpenDB(src.Path)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		doc, err = dataset.FromDB(d)
		if err != nil {
			return nil, err
		}
	default:
		doc, err = dataset.LoadFile(src.Path)
		if err != nil {
			return nil, err
		}
	}

	policy := dataset.DanglingAbort
	if dropDangling {
		policy = dataset.DanglingDrop
	}
	snap, dropped, err := dataset.Build(doc, policy)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", src.Path, err)
	}

	slog.Debug("network loaded", "source", src.Path, "nodes", snap.Len(),
		"edges", len(snap.Edges()), "dropped", len(dropped))
	return snap, nil
}

// LoadConfig reads --config, or constellation.toml in the working directory, or the defaults
func LoadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		if _, err := os.Stat(configName); err == nil {
			path = configName
		}
	}
	return config.Load(path)
}

// NewEngine wires the snapshot and config into a query engine
func NewEngine(snap *graph.Snapshot, cfg *config.Config) *engine.Engine {
	return engine.New(snap, engine.WithPolicy(engine.Policy{
		Metrics: cfg.MetricsOptions(),
		Paths:   cfg.PathPolicy(),
	}))
}

// ResolveNode finds a node by full ID, unique ID prefix, or label search.
func ResolveNode(snap *graph.Snapshot, reference string) (graph.Node, error) {
	// 1. Exact ID match
	if node, ok := snap.Node(reference); ok {
		return node, nil
	}

	// 2. ID prefix match
	matches := snap.NodesWithIDPrefix(reference)
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		// fall through to label search
	default:
		return graph.Node{}, ambiguous(reference, matches, "Use a full node ID instead.")
	}

	// 3. Label search
	hits := snap.SearchLabels(reference)
	switch len(hits) {
	case 1:
		return hits[0], nil
	case 0:
		return graph.Node{}, &graph.NodeNotFoundError{ID: reference}
	default:
		return graph.Node{}, ambiguous(reference, hits, "Use a node ID instead.")
	}
}

func ambiguous(reference string, matches []graph.Node, hint string) error {
	limit := 10
	if len(matches) < limit {
		limit = len(matches)
	}
	lines := make([]string, limit)
	for i := 0; i < limit; i++ {
		lines[i] = fmt.Sprintf("  %s %s", matches[i].ID, truncLabel(matches[i].Label, 50))
	}
	return fmt.Errorf("ambiguous reference '%s'. %d matches:\n%s\n%s",
		reference, len(matches), strings.Join(lines, "\n"), hint)
}
