// Package metrics exports the weekly pipeline KPIs as Prometheus gauges.
package metrics

import (
	"fmt"

	"github.com/alexanderramin/cocoon/internal/domain"
	"github.com/alexanderramin/cocoon/internal/kpi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cocoon"

var rygColours = []domain.RYG{domain.RYGRed, domain.RYGYellow, domain.RYGGreen}

// KPIGauges holds the gauges on their own registry, so a CLI run exports
// only what it computed.
type KPIGauges struct {
	Registry *prometheus.Registry

	volume     prometheus.Gauge
	conversion prometheus.Gauge
	leadTime   prometheus.Gauge
	ryg        *prometheus.GaugeVec
	items      *prometheus.GaugeVec
}

func NewKPIGauges() *KPIGauges {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &KPIGauges{
		Registry: reg,
		volume: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "f1_volume",
			Help:      "New-stage items created in the current ISO week.",
		}),
		conversion: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "f1_to_f2_conversion_percent",
			Help:      "Share of this week's new items that left stage 1 within the week.",
		}),
		leadTime: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "f1_to_f2_lead_time_median_days",
			Help:      "Lower median of whole days from creation to stage-1 exit.",
		}),
		ryg: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ryg_status",
			Help:      "Traffic light of the conversion rate (1 for the active colour).",
		}, []string{"status"}),
		items: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "items",
			Help:      "Items per stage.",
		}, []string{"stage"}),
	}
}

// Set records k and the per-stage counts.
func (g *KPIGauges) Set(k kpi.WeeklyKPIs, counts map[domain.Stage]int) {
	g.volume.Set(float64(k.F1Volume))
	g.conversion.Set(float64(k.F1ToF2Conversion))
	g.leadTime.Set(float64(k.F1ToF2LeadTimeMedian))
	for _, c := range rygColours {
		v := 0.0
		if c == k.RYGStatus {
			v = 1
		}
		g.ryg.WithLabelValues(string(c)).Set(v)
	}
	for _, st := range domain.Stages {
		g.items.WithLabelValues(st.Label()).Set(float64(counts[st]))
	}
}

// WriteTextfile writes the gauges in the text exposition format, for the
// node exporter textfile collector.
func (g *KPIGauges) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, g.Registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
