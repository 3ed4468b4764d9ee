package tree

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/ordtree/lib/infra"
	"github.com/benz9527/ordtree/lib/xlog"
)

func collectSums(t *testing.T, reader sdkmetric.Reader) map[string]map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	sums := make(map[string]map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			data, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range data.DataPoints {
				kind, _ := dp.Attributes.Value(attribute.Key("tree.kind"))
				if sums[m.Name] == nil {
					sums[m.Name] = make(map[string]int64)
				}
				sums[m.Name][kind.AsString()] += dp.Value
			}
		}
	}
	return sums
}

func TestTreeStats(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))

	avl := NewAVLTree[int](infra.OrderedKeyCompare[int], WithTreeStats("test"))
	rb := NewRBTree[int](infra.OrderedKeyCompare[int], WithTreeStats("test"))
	for i := 0; i < 3; i++ {
		avl.Insert(i)
		rb.Insert(i)
	}
	avl.Insert(0)
	avl.Remove(1)
	avl.Remove(100)

	clone := rb.Clone()
	rb.Release()

	sums := collectSums(t, reader)
	require.Equal(t, int64(3), sums["tree.insert.count"]["AVL"])
	require.Equal(t, int64(1), sums["tree.remove.count"]["AVL"])
	require.Equal(t, int64(2), sums["tree.size"]["AVL"])
	// 0, 1, 2 needs a single rotation in both variants.
	require.Equal(t, int64(1), sums["tree.rotate.count"]["AVL"])
	require.Equal(t, int64(1), sums["tree.rotate.count"]["RedBlack"])
	require.Equal(t, int64(3), sums["tree.insert.count"]["RedBlack"])
	// The clone keeps the elements after the release.
	require.Equal(t, clone.Len(), sums["tree.size"]["RedBlack"])
}

func TestTreeStats_Disabled(t *testing.T) {
	var stats *treeStats
	require.NotPanics(t, func() {
		stats.RecordInsert()
		stats.RecordRemove()
		stats.RecordRotate()
		stats.RecordSize(10)
	})
}

func TestTreeLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := xlog.NewXLogger(
		xlog.WithXLoggerWriteSyncer(zapcore.AddSync(buf)),
		xlog.WithXLoggerLevel(xlog.LogLevelDebug),
		xlog.WithXLoggerEncoder(xlog.JSON),
	)
	tree := NewRBTree[int](infra.OrderedKeyCompare[int], WithTreeLogger(logger)).(*rbTree[int])
	tree.Insert(1)
	tree.Insert(2)

	tree.root.meta = Red
	require.Error(t, Validate[int](tree))
	tree.Release()
	require.NoError(t, logger.Sync())

	out := buf.String()
	require.Contains(t, out, "[tree] validation failed")
	require.Contains(t, out, "red root violation")
	require.Contains(t, out, "[tree] released")
}
