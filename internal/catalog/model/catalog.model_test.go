package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name       string
		page, size string
		want       Page
	}{
		{"missing", "", "", Page{Number: 1, Size: 10}},
		{"explicit", "3", "25", Page{Number: 3, Size: 25}},
		{"non-numeric", "abc", "ten", Page{Number: 1, Size: 10}},
		{"zero and negative", "0", "-5", Page{Number: 1, Size: 10}},
		{"decimal", "2.5", "4", Page{Number: 1, Size: 4}},
		{"page only", "7", "", Page{Number: 7, Size: 10}},
		{"size capped", "1", "5000", Page{Number: 1, Size: MaxSize}},
		{"max int64", "9223372036854775807", "9223372036854775807", Page{Number: math.MaxInt64, Size: MaxSize}},
		{"beyond int64", "9223372036854775808", "99999999999999999999", Page{Number: 1, Size: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePage(tt.page, tt.size))
		})
	}
}

func TestPageSkip(t *testing.T) {
	for page := int64(1); page <= 5; page++ {
		for size := int64(1); size <= 20; size++ {
			p := Page{Number: page, Size: size}
			assert.Equal(t, (page-1)*size, p.Skip())
		}
	}
}

func TestPageSkipNeverNegative(t *testing.T) {
	tests := []struct {
		name string
		page Page
		want int64
	}{
		{"zero value", Page{}, 0},
		{"huge page", ParsePage("9223372036854775807", "10"), math.MaxInt64},
		{"huge page and size", Page{Number: math.MaxInt64, Size: math.MaxInt64}, math.MaxInt64},
		{"last exact page", Page{Number: math.MaxInt64/10 + 1, Size: 10}, math.MaxInt64 / 10 * 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.page.Skip())
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(0), TotalPages(0, 10))
	assert.Equal(t, int64(1), TotalPages(1, 10))
	assert.Equal(t, int64(1), TotalPages(10, 10))
	assert.Equal(t, int64(2), TotalPages(11, 10))
	assert.Equal(t, int64(7), TotalPages(13, 2))
	assert.Equal(t, int64(0), TotalPages(13, 0))
	assert.Equal(t, int64(1), TotalPages(5, math.MaxInt64))
	assert.Equal(t, int64(1), TotalPages(math.MaxInt64, math.MaxInt64))
	assert.Equal(t, int64(math.MaxInt64), TotalPages(math.MaxInt64, 1))
	assert.Equal(t, int64(math.MaxInt64/MaxSize+1), TotalPages(math.MaxInt64, MaxSize))
}
