package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageOf(t *testing.T) {
	tests := []struct {
		name   string
		scores []Score
		want   string
	}{
		{name: "no ratings is zero", scores: nil, want: "0.00"},
		{name: "single rating", scores: []Score{4}, want: "4.00"},
		{name: "mean of two", scores: []Score{4, 2}, want: "3.00"},
		{name: "rounds to two decimals", scores: []Score{1, 2, 2}, want: "1.67"},
		{name: "rounds half up", scores: []Score{1, 1, 1, 1, 1, 1, 1, 2}, want: "1.13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AverageOf(tt.scores...).String())
		})
	}
}

func TestAverageMarshalJSON(t *testing.T) {
	payload, err := json.Marshal(struct {
		Overall Average  `json:"overall_rating"`
		Owner   *Average `json:"owner_rating"`
	}{
		Overall: NewAverage(decimal.NewFromInt(4)),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"overall_rating":4.00,"owner_rating":null}`, string(payload))
	assert.Contains(t, string(payload), "4.00")
}

func TestAverageZeroValue(t *testing.T) {
	var a Average
	payload, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, "0.00", string(payload))
}
