package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"capitol/constellation/internal/graph"
)

// EnvAddr overrides Server.Addr when set
const EnvAddr = "CONSTELLATION_ADDR"

var validate = validator.New()

type HealthConfig struct {
	DensityWeight     float64 `toml:"density_weight" validate:"gte=0"`
	ClusteringWeight  float64 `toml:"clustering_weight" validate:"gte=0"`
	StrongRatioWeight float64 `toml:"strong_ratio_weight" validate:"gte=0"`
	ActivityWeight    float64 `toml:"activity_weight" validate:"gte=0"`
	TopN              int     `toml:"top_n" validate:"gte=0"`
}

type PathsConfig struct {
	LengthWeight    float64 `toml:"length_weight" validate:"gte=0"`
	WeakestWeight   float64 `toml:"weakest_weight" validate:"gte=0"`
	InfluenceWeight float64 `toml:"influence_weight" validate:"gte=0"`
	NegativePenalty int     `toml:"negative_penalty" validate:"gte=0,lte=100"`
	CapBase         int     `toml:"cap_base" validate:"gte=0,lte=100"`
	CapPerWeight    int     `toml:"cap_per_weight" validate:"gte=0"`
	MaxTieExpansion int     `toml:"max_tie_expansion" validate:"gte=0"`
	DefaultK        int     `toml:"default_k" validate:"gte=1,lte=50"`
}

type ActivityConfig struct {
	WindowDays int `toml:"window_days" validate:"gte=1"`
	Target     int `toml:"target" validate:"gte=1"`
	StaleDays  int `toml:"stale_days" validate:"gte=0"`
}

type ServerConfig struct {
	Addr string `toml:"addr" validate:"required"`
}

type Config struct {
	Health   HealthConfig   `toml:"health"`
	Paths    PathsConfig    `toml:"paths"`
	Activity ActivityConfig `toml:"activity"`
	Server   ServerConfig   `toml:"server"`
}

// Default mirrors graph.DefaultMetricsOptions and graph.DefaultPathPolicy
func Default() *Config {
	m := graph.DefaultMetricsOptions()
	p := graph.DefaultPathPolicy()
	return &Config{
		Health: HealthConfig{
			DensityWeight:     m.Weights.Density,
			ClusteringWeight:  m.Weights.Clustering,
			StrongRatioWeight: m.Weights.StrongRatio,
			ActivityWeight:    m.Weights.Activity,
			TopN:              m.TopN,
		},
		Paths: PathsConfig{
			LengthWeight:    p.LengthWeight,
			WeakestWeight:   p.WeakestWeight,
			InfluenceWeight: p.InfluenceWeight,
			NegativePenalty: p.NegativePenalty,
			CapBase:         p.CapBase,
			CapPerWeight:    p.CapPerWeight,
			MaxTieExpansion: p.MaxTieExpansion,
			DefaultK:        3,
		},
		Activity: ActivityConfig{
			WindowDays: int(m.RecentWindow / (24 * time.Hour)),
			Target:     m.ActivityTarget,
			StaleDays:  m.StaleDays,
		},
		Server: ServerConfig{Addr: "127.0.0.1:8420"},
	}
}

// Load reads a TOML file over the defaults. Keys absent from the file keep
// their default values. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	}

	if addr := os.Getenv(EnvAddr); addr != "" {
		cfg.Server.Addr = addr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section's constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// MetricsOptions converts the health and activity sections for graph.ComputeMetrics.
// Now is left zero; the caller anchors it.
func (c *Config) MetricsOptions() graph.MetricsOptions {
	return graph.MetricsOptions{
		RecentWindow:   time.Duration(c.Activity.WindowDays) * 24 * time.Hour,
		ActivityTarget: c.Activity.Target,
		StaleDays:      c.Activity.StaleDays,
		TopN:           c.Health.TopN,
		Weights: graph.HealthWeights{
			Density:     c.Health.DensityWeight,
			Clustering:  c.Health.ClusteringWeight,
			StrongRatio: c.Health.StrongRatioWeight,
			Activity:    c.Health.ActivityWeight,
		},
	}
}

// PathPolicy converts the paths section for graph.FindTopPaths
func (c *Config) PathPolicy() graph.PathPolicy {
	return graph.PathPolicy{
		LengthWeight:    c.Paths.LengthWeight,
		WeakestWeight:   c.Paths.WeakestWeight,
		InfluenceWeight: c.Paths.InfluenceWeight,
		NegativePenalty: c.Paths.NegativePenalty,
		CapBase:         c.Paths.CapBase,
		CapPerWeight:    c.Paths.CapPerWeight,
		MaxTieExpansion: c.Paths.MaxTieExpansion,
	}
}
