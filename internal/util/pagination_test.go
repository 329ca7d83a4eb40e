package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		page, size int
		from, lim  int
	}{
		{1, 10, 0, 10},
		{3, 20, 40, 20},
		{0, 10, 0, 10},
		{-5, 10, 0, 10},
		{2, 0, DefaultPageSize, DefaultPageSize},
		{2, MaxPageSize + 1, DefaultPageSize, DefaultPageSize},
	}
	for _, tc := range tests {
		from, lim := Calculate(tc.page, tc.size)
		assert.Equal(t, tc.from, from, "page=%d size=%d", tc.page, tc.size)
		assert.Equal(t, tc.lim, lim, "page=%d size=%d", tc.page, tc.size)
	}
}
