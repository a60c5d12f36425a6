package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFloor2(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1200", "1200"},
		{"12.349", "12.34"},
		{"12.341", "12.34"},
		{"0.009", "0"},
		{"-1.001", "-1.01"},
	}
	for _, c := range cases {
		got := Floor2(d(c.in))
		assert.True(t, d(c.want).Equal(got), "Floor2(%s) = %s, want %s", c.in, got, c.want)
	}
}

func TestRoundHalfUp2(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"12.345", "12.35"},
		{"12.344", "12.34"},
		{"0.005", "0.01"},
		{"50.2", "50.2"},
		{"-1.005", "-1"},
	}
	for _, c := range cases {
		got := RoundHalfUp2(d(c.in))
		assert.True(t, d(c.want).Equal(got), "RoundHalfUp2(%s) = %s, want %s", c.in, got, c.want)
	}
}

func TestFloorAndRoundDiffer(t *testing.T) {
	v := d("10.999")
	assert.Equal(t, "10.99", Floor2(v).StringFixed(2))
	assert.Equal(t, "11.00", RoundHalfUp2(v).StringFixed(2))
}

func TestSumAndHelpers(t *testing.T) {
	assert.True(t, Sum().IsZero())
	assert.True(t, d("6.5").Equal(Sum(d("1"), d("2.5"), d("3"))))
	assert.True(t, Max0(d("-3")).IsZero())
	assert.True(t, d("3").Equal(Max0(d("3"))))
	assert.True(t, OrZero(nil).IsZero())
	v := d("7")
	assert.True(t, v.Equal(OrZero(&v)))
}
