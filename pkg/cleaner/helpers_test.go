package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// assertCounterIdentity checks that every scanned file got exactly one outcome.
// It is untagged so both the unit and integration suites can use it.
func assertCounterIdentity(t *testing.T, result CleanupResult) {
	t.Helper()
	sum := result.TotalRemoved + result.PreservedCount + result.SkippedCount + result.FailedCount
	assert.Equal(t, result.TotalScanned, sum, "outcome counters must add up to the scanned total")
	assert.Len(t, result.Items, result.TotalScanned)
}
