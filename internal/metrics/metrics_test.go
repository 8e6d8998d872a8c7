package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestMustRegisterAndIncrement(t *testing.T) {
	reg := prometheus.NewRegistry()
	MustRegister(reg)

	LifecycleTransitions.WithLabelValues("Started").Inc()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}

	var found *dto.MetricFamily
	for _, mf := range mfs {
		if mf.GetName() == "pg_embed_lifecycle_transitions_total" {
			found = mf
		}
	}
	if found == nil {
		t.Fatal("pg_embed_lifecycle_transitions_total not found in gathered metrics")
	}
	if len(found.Metric) == 0 {
		t.Fatal("no samples recorded for pg_embed_lifecycle_transitions_total")
	}
}
