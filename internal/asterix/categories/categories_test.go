package categories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for _, s := range All() {
		got, ok := Lookup(s.Category())
		require.True(t, ok)
		assert.Same(t, s, got)
	}

	_, ok := Lookup(240)
	assert.False(t, ok)
}

func TestAllSorted(t *testing.T) {
	all := All()
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Category(), all[i].Category())
	}
}

func TestItemsInFRNOrder(t *testing.T) {
	for _, s := range All() {
		items := s.Items()
		require.NotEmpty(t, items)
		assert.Equal(t, "I010", items[0].ID, "CAT%03d", s.Category())
		for i := 1; i < len(items); i++ {
			assert.Less(t, items[i-1].FRN, items[i].FRN)
		}
	}
}
