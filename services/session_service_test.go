package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuantity(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, 10},
		{1, 10},
		{4, 10},
		{10, 10},
		{14, 10},
		{15, 20},
		{23, 20},
		{27, 30},
		{100, 100},
		{-5, 10},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeQuantity(tc.in), "in=%d", tc.in)
	}
}
