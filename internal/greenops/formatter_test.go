package greenops

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{n: 0, want: "0"},
		{n: 123, want: "123"},
		{n: 1234, want: "1,234"},
		{n: 1234567, want: "1,234,567"},
		{n: -1234, want: "-1,234"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.n))
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name      string
		f         float64
		precision int
		want      string
	}{
		{name: "two decimals", f: 1234.567, precision: 2, want: "1,234.57"},
		{name: "no decimals", f: 1234.5, precision: 0, want: "1,234"},
		{name: "small", f: 3.94, precision: 1, want: "3.9"},
		{name: "negative", f: -12345.678, precision: 1, want: "-12,345.7"},
		{name: "negative fraction", f: -0.25, precision: 2, want: "-0.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloat(tt.f, tt.precision))
		})
	}
}

func TestFormatTonsAndPercent(t *testing.T) {
	assert.Equal(t, "87.20 t", FormatTons(87.2))
	assert.Equal(t, "1,261.50 t", FormatTons(1261.5))
	assert.Equal(t, "30.9%", FormatPercent(30.876))
	assert.Equal(t, "-11.0%", FormatPercent(-10.98))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$85,000", FormatMoney(decimal.NewFromInt(85000)))
	assert.Equal(t, "$1,250", FormatMoney(decimal.RequireFromString("1249.6")))
	assert.Equal(t, "-$72,500", FormatMoney(decimal.NewFromInt(-72500)))
	assert.Equal(t, "$0", FormatMoney(decimal.Zero))
}

func TestFormatLarge(t *testing.T) {
	assert.Equal(t, "999,999", FormatLarge(999_999))
	assert.Equal(t, "~1.5 million", FormatLarge(1_500_000))
	assert.Equal(t, "~2.0 billion", FormatLarge(2_000_000_000))
}
