package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolicies(t *testing.T) {
	t.Parallel()

	policies, err := ParsePolicies("annual:25,sick:10,emergency:-")
	require.NoError(t, err)
	require.Len(t, policies, 3)

	assert.Equal(t, TypePolicy{Name: "annual", Tracked: true, AnnualAllocation: 25}, policies["annual"])
	assert.Equal(t, TypePolicy{Name: "sick", Tracked: true, AnnualAllocation: 10}, policies["sick"])
	assert.Equal(t, TypePolicy{Name: "emergency", Tracked: false}, policies["emergency"])
}

func TestParsePolicies_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec string
	}{
		{"empty spec", ""},
		{"missing allocation", "annual"},
		{"negative allocation", "annual:-5"},
		{"non-numeric allocation", "annual:lots"},
		{"missing name", ":10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePolicies(tt.spec)
			assert.Error(t, err)
		})
	}
}

func TestLedgerEntry_Remaining(t *testing.T) {
	t.Parallel()

	entry := LedgerEntry{Allocated: 25, Used: 10, Pending: 3}
	assert.Equal(t, 12, entry.Remaining())

	// Conservation: the three buckets always sum back to the allocation.
	assert.Equal(t, entry.Allocated, entry.Used+entry.Pending+entry.Remaining())
}

func TestRequestStatus_Terminal(t *testing.T) {
	t.Parallel()

	assert.False(t, RequestStatusPending.Terminal())
	assert.True(t, RequestStatusApproved.Terminal())
	assert.True(t, RequestStatusRejected.Terminal())
	assert.True(t, RequestStatusCancelled.Terminal())
}
