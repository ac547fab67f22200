package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpochTables_Shape(t *testing.T) {
	tables := []struct {
		name        string
		table       []EpochRecord
		first, last int
	}{
		{"pre-reform", preReformEpochs, FirstSupportedYear, ReformYear - 1},
		{"reform", reformEpochs, ReformYear, LastSupportedYear},
	}

	for _, tt := range tables {
		t.Run(tt.name, func(t *testing.T) {
			require.Len(t, tt.table, tt.last-tt.first+1)
			for i, rec := range tt.table {
				assert.Equal(t, tt.first+i, rec.BEYear, "record %d out of sequence", i)
				assert.Contains(t, []Era{1, 2, 3}, rec.Era, "BE %d", rec.BEYear)
				assert.GreaterOrEqual(t, rec.BaseOffset, 0, "BE %d", rec.BEYear)
			}
		})
	}
}

func TestLookupEpoch(t *testing.T) {
	tests := []struct {
		beYear int
		want   EpochRecord
	}{
		{2300, EpochRecord{2300, 3, 0}},
		{2301, EpochRecord{2301, 1, 52}},
		{2400, EpochRecord{2400, 3, 35}},
		{2483, EpochRecord{2483, 3, 21}},
		{2484, EpochRecord{2484, 3, 33}},
		{2560, EpochRecord{2560, 3, 33}},
		{2620, EpochRecord{2620, 3, 36}},
	}

	for _, tt := range tests {
		got, err := LookupEpoch(tt.beYear)
		require.NoError(t, err, "BE %d", tt.beYear)
		assert.Equal(t, tt.want, got)
	}
}

func TestLookupEpoch_OutOfRange(t *testing.T) {
	for _, beYear := range []int{0, 2299, 2621, 3000} {
		_, err := LookupEpoch(beYear)
		assert.True(t, IsOutOfRange(err), "BE %d", beYear)
	}

	// The pre-reform table alone stops at 2483.
	_, err := lookupIn(preReformEpochs, ReformYear)
	assert.True(t, IsOutOfRange(err))
}
