package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	t.Run("removes duplicates and blanks, preserves order", func(t *testing.T) {
		got := DedupeAndTrim([]string{"  OFAC SDN ", "EU Consolidated", "OFAC SDN", "", "   "})
		assert.Equal(t, []string{"OFAC SDN", "EU Consolidated"}, got)
	})

	t.Run("empty input passes through", func(t *testing.T) {
		assert.Empty(t, DedupeAndTrim(nil))
		assert.Empty(t, DedupeAndTrim([]string{}))
	})
}
