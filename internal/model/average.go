package model

import "github.com/shopspring/decimal"

// Average is a mean star rating rounded to two decimals. The zero value is 0.00.
type Average struct {
	decimal.Decimal
}

// NewAverage rounds d to two decimals.
func NewAverage(d decimal.Decimal) Average {
	return Average{Decimal: d.Round(2)}
}

// AverageOf computes the arithmetic mean of scores, or zero when there are none.
func AverageOf(scores ...Score) Average {
	if len(scores) == 0 {
		return Average{}
	}
	sum := decimal.Zero
	for _, s := range scores {
		sum = sum.Add(decimal.NewFromInt(int64(s)))
	}
	return NewAverage(sum.Div(decimal.NewFromInt(int64(len(scores)))))
}

// MarshalJSON writes the average as a number with exactly two decimals, e.g. 4.00.
func (a Average) MarshalJSON() ([]byte, error) {
	return []byte(a.StringFixed(2)), nil
}

func (a Average) String() string {
	return a.StringFixed(2)
}
