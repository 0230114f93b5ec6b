package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecordOnOwnRegistry(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordDisclosure(true)
	m.RecordDisclosure(false)
	m.RecordDisclosure(false)
	m.IncrementSpamReported()
	m.IncrementContactsAdded()
	m.IncrementStoreFailure("fetch_by_id")
	m.ObserveOperation("search_by_name", time.Now())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Disclosures.WithLabelValues("disclosed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Disclosures.WithLabelValues("withheld")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SpamReported))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ContactsAdded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreFailures.WithLabelValues("fetch_by_id")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.OperationDuration))
}

func TestNewTwiceOnSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
