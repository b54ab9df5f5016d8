package order_test

import (
	"strings"
	"testing"
	"time"

	"foodhub/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	t.Run("has_prefix_date_and_suffix", func(t *testing.T) {
		number := order.GenerateOrderNumber(now)

		assert.Len(t, number, 15)
		assert.True(t, strings.HasPrefix(number, "ORD20250314"))
		assert.True(t, order.ValidateOrderNumber(number))
	})

	t.Run("suffix_varies", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 100 {
			seen[order.GenerateOrderNumber(now)] = true
		}
		// 100 draws from 10000 suffixes collide occasionally, but never
		// down to a single value.
		assert.Greater(t, len(seen), 1)
	})
}

func TestValidateOrderNumber(t *testing.T) {
	assert.True(t, order.ValidateOrderNumber("ORD202503140042"))
	assert.False(t, order.ValidateOrderNumber("ORD2025031442"))
	assert.False(t, order.ValidateOrderNumber("XYZ202503140042"))
	assert.False(t, order.ValidateOrderNumber("ORD20250314ABCD"))
	assert.False(t, order.ValidateOrderNumber(""))
}
