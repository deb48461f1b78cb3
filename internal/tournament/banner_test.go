package tournament

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickBannerIsDeterministic(t *testing.T) {
	for _, id := range []string{"1", "17", "42", "1234567890"} {
		first := PickBanner(id)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, PickBanner(id), "id %s", id)
		}
	}
}

func TestPickBannerStaysInPool(t *testing.T) {
	pool := map[string]bool{}
	for _, f := range bannerFiles {
		pool[f] = true
	}
	for i := 0; i < 200; i++ {
		assert.True(t, pool[PickBanner(strconv.Itoa(i))])
	}
}

func TestPickBannerSpreadsAcrossPool(t *testing.T) {
	seen := map[string]bool{}
	ids := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}
	for _, id := range ids {
		seen[PickBanner(id)] = true
	}
	assert.Greater(t, len(seen), 1, "consecutive ids should not all share one banner")
}
