package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, UploadRowsTotal)
	assert.NotNil(t, UploadErrorsTotal)
	assert.NotNil(t, RepricingRunsTotal)
	assert.NotNil(t, RepricingErrorsTotal)
	assert.NotNil(t, RepricingDuration)
	assert.NotNil(t, RepricingLimitHits)
	assert.NotNil(t, RepricingDailyUsage)
	assert.NotNil(t, ScoringDistribution)
	assert.NotNil(t, PricesComputedTotal)
}
