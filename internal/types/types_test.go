package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0012345", "12345"},
		{"1234567", "1234567"},
		{"0000000", "0"},
		{"0", "0"},
		{"", ""},
		{"0000001", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizeCode(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeCode(got), "normalize must be idempotent")
		})
	}
}

func TestQuantity(t *testing.T) {
	tests := []struct {
		name  string
		price string
		total string
		want  string
	}{
		{"whole", "10.00", "20.00", "2"},
		{"rounded", "3.00", "10.00", "3.33"},
		{"half rounds up", "8.00", "1.00", "0.13"},
		{"zero price", "0.00", "5.00", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quantity(dec(tt.price), dec(tt.total))
			assert.True(t, dec(tt.want).Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestSurchargeSet(t *testing.T) {
	s := SurchargeSet{Fuel: dec("7.50"), DeliverySize: dec("2.25"), CreditTerms: dec("1.10")}

	assert.True(t, dec("10.85").Equal(s.Total()))

	entries := s.Entries()
	assert.Len(t, entries, 3)
	assert.Equal(t, SurchargeFuel, entries[0].Name)
	assert.Equal(t, SurchargeDeliverySize, entries[1].Name)
	assert.Equal(t, SurchargeCreditTerms, entries[2].Name)

	var empty SurchargeSet
	assert.True(t, empty.Total().IsZero())
}

func TestCategoryTotals(t *testing.T) {
	c := NewCategoryTotals()
	c.Add("COFFEE", dec("20.00"))
	c.Add("DAIRY", dec("4.10"))
	c.Add("COFFEE", dec("0.005"))

	assert.Equal(t, 2, c.Len())

	got, ok := c.Get("COFFEE")
	assert.True(t, ok)
	assert.True(t, dec("20.005").Equal(got), "accumulation keeps full precision")

	entries := c.Entries()
	assert.Equal(t, "COFFEE", entries[0].Name)
	assert.Equal(t, "DAIRY", entries[1].Name)
	assert.True(t, dec("24.105").Equal(c.Sum()))

	_, ok = c.Get("MEAT")
	assert.False(t, ok)
}

func TestResolutionString(t *testing.T) {
	assert.Equal(t, "none", ResolutionNone.String())
	assert.Equal(t, "resolved", ResolutionResolved.String())
	assert.Equal(t, "unresolved", ResolutionUnresolved.String())
}
