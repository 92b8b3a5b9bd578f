package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()
	m.NoteCreated("acme")
	m.NoteCreated("acme")
	m.LimitRejected("acme", "free")
	m.Upgraded("acme")
	m.AuthFailure("expired")
	m.ObserveRequest("GET", "/notes", "200", 0.01)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.NotesCreated.WithLabelValues("acme")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LimitRejections.WithLabelValues("acme", "free")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TenantUpgrades.WithLabelValues("acme")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthFailures.WithLabelValues("expired")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/notes", "200")))
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a, b := NewMetrics(), NewMetrics()
	a.NoteCreated("acme")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.NotesCreated.WithLabelValues("acme")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.NoteCreated("acme")
		m.ObserveRequest("GET", "/", "200", 0)
		m.Denied("acme", "get")
	})
}
