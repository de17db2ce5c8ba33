package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  Score
		ok    bool
	}{
		{name: "lower bound", value: 1, want: 1, ok: true},
		{name: "upper bound", value: 5, want: 5, ok: true},
		{name: "middle", value: 3, want: 3, ok: true},
		{name: "zero", value: 0, ok: false},
		{name: "six", value: 6, ok: false},
		{name: "fractional", value: 1.5, ok: false},
		{name: "negative", value: -1, ok: false},
		{name: "nan", value: math.NaN(), ok: false},
		{name: "infinity", value: math.Inf(1), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseScore(tt.value)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleUser, RoleOwner} {
		got, ok := ParseRole(string(r))
		assert.True(t, ok, r)
		assert.Equal(t, r, got)
	}

	_, ok := ParseRole("superuser")
	assert.False(t, ok)
	_, ok = ParseRole("")
	assert.False(t, ok)
}
