package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/alexanderramin/cocoon/internal/kpi"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() (kpi.WeeklyKPIs, map[domain.Stage]int) {
	k := kpi.WeeklyKPIs{
		F1Volume:             4,
		F1ToF2Conversion:     50,
		F1ToF2LeadTimeMedian: 3,
		RYGStatus:            domain.RYGYellow,
	}
	counts := map[domain.Stage]int{
		domain.StageNew:       4,
		domain.StageDiscovery: 2,
	}
	return k, counts
}

func TestKPIGauges_Set(t *testing.T) {
	g := NewKPIGauges()
	g.Set(sample())

	assert.Equal(t, 4.0, testutil.ToFloat64(g.volume))
	assert.Equal(t, 50.0, testutil.ToFloat64(g.conversion))
	assert.Equal(t, 3.0, testutil.ToFloat64(g.leadTime))
	assert.Equal(t, 1.0, testutil.ToFloat64(g.ryg.WithLabelValues("yellow")))
	assert.Equal(t, 0.0, testutil.ToFloat64(g.ryg.WithLabelValues("red")))
	assert.Equal(t, 2.0, testutil.ToFloat64(g.items.WithLabelValues("Discovery")))
	assert.Equal(t, 0.0, testutil.ToFloat64(g.items.WithLabelValues("Done")))
}

func TestKPIGauges_WriteTextfile(t *testing.T) {
	g := NewKPIGauges()
	g.Set(sample())

	path := filepath.Join(t.TempDir(), "cocoon.prom")
	require.NoError(t, g.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "cocoon_f1_volume 4")
	assert.Contains(t, text, "cocoon_f1_to_f2_conversion_percent 50")
	assert.Contains(t, text, `cocoon_ryg_status{status="yellow"} 1`)
	assert.Contains(t, text, `cocoon_items{stage="New"} 4`)
}
