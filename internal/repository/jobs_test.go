package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEscapeLikePatternTreatsFiltersLiterally(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"engineer", "engineer"},
		{"100%", `100\%`},
		{"senior_backend", `senior\_backend`},
		{`C:\temp`, `C:\\temp`},
		{"%_%", `\%\_\%`},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, escapeLikePattern(tc.in), "input %q", tc.in)
	}
}
