package tree

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	TreeStatsName = "ordtree/tree"
)

type treeStats struct {
	attrs       metric.MeasurementOption
	insertCount metric.Int64Counter
	removeCount metric.Int64Counter
	rotateCount metric.Int64Counter
	size        metric.Int64UpDownCounter
}

func (stats *treeStats) RecordInsert() {
	if stats == nil {
		return
	}
	stats.insertCount.Add(context.Background(), 1, stats.attrs)
	stats.size.Add(context.Background(), 1, stats.attrs)
}

func (stats *treeStats) RecordRemove() {
	if stats == nil {
		return
	}
	stats.removeCount.Add(context.Background(), 1, stats.attrs)
	stats.size.Add(context.Background(), -1, stats.attrs)
}

func (stats *treeStats) RecordRotate() {
	if stats == nil {
		return
	}
	stats.rotateCount.Add(context.Background(), 1, stats.attrs)
}

func (stats *treeStats) RecordSize(delta int64) {
	if stats == nil || delta == 0 {
		return
	}
	stats.size.Add(context.Background(), delta, stats.attrs)
}

func newTreeStats(name string, kind TreeKind) *treeStats {
	meterName := fmt.Sprintf("%s/%s", TreeStatsName, name)
	meter := otel.Meter(meterName)
	return &treeStats{
		attrs: metric.WithAttributeSet(attribute.NewSet(
			attribute.String("tree.kind", kind.String()),
		)),
		insertCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"tree.insert.count",
			metric.WithDescription("The number of elements inserted into the tree."),
		)),
		removeCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"tree.remove.count",
			metric.WithDescription("The number of elements removed from the tree."),
		)),
		rotateCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"tree.rotate.count",
			metric.WithDescription("The number of rotations done by the rebalancing."),
		)),
		size: lo.Must[metric.Int64UpDownCounter](meter.Int64UpDownCounter(
			"tree.size",
			metric.WithDescription("The number of elements in the tree."),
		)),
	}
}
