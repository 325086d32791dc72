package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{34, "$34.00"},
		{3333.33, "$3,333.33"},
		{100000, "$100,000.00"},
		{1234567.891, "$1,234,567.89"},
		{-5000, "-$5,000.00"},
		{-0.001, "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(tt.in))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "60%", FormatPercent(60, 0))
	assert.Equal(t, "5.26%", FormatPercent(5.26, 2))
	assert.Equal(t, "33.3%", FormatPercent(33.33, 1))
}
