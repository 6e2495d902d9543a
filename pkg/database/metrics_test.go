package database

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// describe drains the collector's descriptors. Collect needs a live pool, so
// tests only exercise the descriptor side.
func describe(c prometheus.Collector) []*prometheus.Desc {
	ch := make(chan *prometheus.Desc, 32)
	c.Describe(ch)
	close(ch)

	descs := make([]*prometheus.Desc, 0, 32)
	for d := range ch {
		descs = append(descs, d)
	}
	return descs
}

func TestPoolStatsCollector_ImplementsCollector(t *testing.T) {
	var _ prometheus.Collector = NewPoolStatsCollector(nil, "studysphere")
}

func TestPoolStatsCollector_DescribesEveryPoolStat(t *testing.T) {
	c := NewPoolStatsCollector(nil, "studysphere")
	require.Equal(t, "studysphere", c.service)

	descs := describe(c)
	assert.Len(t, descs, 12)

	wantNames := []string{
		"db_pool_acquired_connections",
		"db_pool_idle_connections",
		"db_pool_total_connections",
		"db_pool_max_connections",
		"db_pool_constructing_connections",
		"db_pool_acquire_count_total",
		"db_pool_acquire_duration_seconds_total",
		"db_pool_canceled_acquire_count_total",
		"db_pool_empty_acquire_count_total",
		"db_pool_new_connections_total",
		"db_pool_max_lifetime_destroy_total",
		"db_pool_max_idle_destroy_total",
	}

	for _, name := range wantNames {
		found := false
		for _, d := range descs {
			if strings.Contains(d.String(), name) {
				found = true
				break
			}
		}
		assert.True(t, found, "missing descriptor %q", name)
	}
}

func TestPoolStatsCollector_DescriptorsCarryServiceLabel(t *testing.T) {
	for _, d := range describe(NewPoolStatsCollector(nil, "studysphere")) {
		assert.Contains(t, d.String(), "service", "descriptor should declare the service label: %s", d)
	}
}
