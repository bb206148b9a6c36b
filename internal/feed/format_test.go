package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1K"},
		{1234, "1.2K"},
		{12345, "12K"},
		{999_999, "1000K"},
		{3_400_000, "3.4M"},
		{2_000_000_000, "2B"},
		{-1500, "-1.5K"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatNumber(tc.in), "%d", tc.in)
	}
}
