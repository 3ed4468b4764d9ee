package bench

import (
	"io"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/benz9527/ordtree/lib/infra"
	"github.com/benz9527/ordtree/lib/xlog"
)

type VariantResult struct {
	Kind   string        `yaml:"kind"`
	Insert time.Duration `yaml:"insert"`
	Find   time.Duration `yaml:"find"`
	Remove time.Duration `yaml:"remove"`
	// Height after all the insertions.
	Height int   `yaml:"height"`
	Len    int64 `yaml:"len"`
}

type Report struct {
	Count    int             `yaml:"count"`
	Removed  int             `yaml:"removed"`
	Seed     uint64          `yaml:"seed"`
	Source   KeySource       `yaml:"key_source"`
	Total    time.Duration   `yaml:"total"`
	RSSBytes uint64          `yaml:"rss_bytes"`
	Variants []VariantResult `yaml:"variants"`
}

func (r *Report) Log(logger xlog.XLogger) {
	if r == nil || logger == nil {
		return
	}
	for _, v := range r.Variants {
		logger.Info("[bench] variant",
			zap.String("kind", v.Kind),
			zap.Int("count", r.Count),
			zap.Int("removed", r.Removed),
			zap.Duration("insert", v.Insert),
			zap.Duration("find", v.Find),
			zap.Duration("remove", v.Remove),
			zap.Int("height", v.Height),
			zap.Int64("len", v.Len),
		)
	}
	logger.Info("[bench] done",
		zap.Duration("total", r.Total),
		zap.Uint64("rss", r.RSSBytes),
	)
}

func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return infra.WrapErrorStack(err)
	}
	return infra.WrapErrorStack(enc.Close())
}
