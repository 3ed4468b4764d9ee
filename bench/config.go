package bench

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/benz9527/ordtree/lib/infra"
	"github.com/benz9527/ordtree/lib/tree"
)

type KeySource string

const (
	RandomKeys     KeySource = "random"
	SequentialKeys KeySource = "sequential"
)

type MetricsExporter string

const (
	NoMetrics         MetricsExporter = "none"
	ConsoleMetrics    MetricsExporter = "console"
	PrometheusMetrics MetricsExporter = "prometheus"
)

type Config struct {
	Variants     []string        `yaml:"variants"`
	Count        int             `yaml:"count"`
	RemoveRatio  float64         `yaml:"remove_ratio"`
	Seed         uint64          `yaml:"seed"`
	KeySource    KeySource       `yaml:"key_source"`
	CheckEveryOp bool            `yaml:"check_every_op"`
	Parallel     bool            `yaml:"parallel"`
	LogLevel     string          `yaml:"log_level"`
	Metrics      MetricsExporter `yaml:"metrics"`
	MetricsAddr  string          `yaml:"metrics_addr"`
	Output       string          `yaml:"output"`
}

var defaultConfig = Config{
	Variants:    []string{tree.NormalBST.String(), tree.AVL.String(), tree.RedBlack.String()},
	Count:       100_000,
	RemoveRatio: 0.5,
	Seed:        1,
	KeySource:   RandomKeys,
	LogLevel:    "INFO",
	Metrics:     NoMetrics,
	MetricsAddr: ":9464",
}

func DefaultConfig() *Config {
	cfg := defaultConfig
	cfg.Variants = append([]string(nil), defaultConfig.Variants...)
	return &cfg
}

// LoadConfig overlays the yaml file on the defaults. An empty path
// returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, infra.WrapErrorStack(err)
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, infra.WrapErrorStack(err)
	}
	return cfg, nil
}

func (cfg *Config) Kinds() ([]tree.TreeKind, error) {
	kinds := make([]tree.TreeKind, 0, len(cfg.Variants))
	seen := make(map[tree.TreeKind]struct{}, len(cfg.Variants))
	for _, v := range cfg.Variants {
		kind, err := tree.ParseTreeKind(v)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[kind]; ok {
			continue
		}
		seen[kind] = struct{}{}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func (cfg *Config) Validate() error {
	var es error
	if len(cfg.Variants) == 0 {
		es = infra.AppendErrorStack(es, infra.NewErrorStack("[bench] no tree variants"))
	} else if _, err := cfg.Kinds(); err != nil {
		es = infra.AppendErrorStack(es, err)
	}
	if cfg.Count <= 0 {
		es = infra.AppendErrorStack(es, infra.NewErrorStack(fmt.Sprintf("[bench] invalid count %d", cfg.Count)))
	}
	if cfg.RemoveRatio < 0 || cfg.RemoveRatio > 1 {
		es = infra.AppendErrorStack(es, infra.NewErrorStack(fmt.Sprintf("[bench] remove ratio %v out of [0, 1]", cfg.RemoveRatio)))
	}
	switch cfg.KeySource {
	case RandomKeys, SequentialKeys:
	default:
		es = infra.AppendErrorStack(es, infra.NewErrorStack("[bench] unknown key source "+string(cfg.KeySource)))
	}
	switch cfg.Metrics {
	case NoMetrics, ConsoleMetrics, PrometheusMetrics:
	default:
		es = infra.AppendErrorStack(es, infra.NewErrorStack("[bench] unknown metrics exporter "+string(cfg.Metrics)))
	}
	return es
}
