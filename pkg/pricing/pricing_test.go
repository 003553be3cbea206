package pricing

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculate(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name     string
		lines    []Line
		items    string
		shipping string
		tax      string
		total    string
	}{
		{
			name:     "empty cart still charges flat shipping",
			lines:    nil,
			items:    "0.00",
			shipping: "10.00",
			tax:      "0.00",
			total:    "10.00",
		},
		{
			name:     "single item under threshold",
			lines:    []Line{{Price: dec("100"), Qty: 1}},
			items:    "100.00",
			shipping: "10.00",
			tax:      "8.00",
			total:    "118.00",
		},
		{
			name:     "over threshold ships free",
			lines:    []Line{{Price: dec("100"), Qty: 2}},
			items:    "200.00",
			shipping: "0.00",
			tax:      "16.00",
			total:    "216.00",
		},
		{
			name:     "exactly at threshold still pays shipping",
			lines:    []Line{{Price: dec("75"), Qty: 2}},
			items:    "150.00",
			shipping: "10.00",
			tax:      "12.00",
			total:    "172.00",
		},
		{
			name:     "just over threshold",
			lines:    []Line{{Price: dec("150.01"), Qty: 1}},
			items:    "150.01",
			shipping: "0.00",
			tax:      "12.00",
			total:    "162.01",
		},
		{
			name:     "tax rounds to cents",
			lines:    []Line{{Price: dec("12.34"), Qty: 1}},
			items:    "12.34",
			shipping: "10.00",
			tax:      "0.99",
			total:    "23.33",
		},
		{
			name:     "subtotal rounds half up",
			lines:    []Line{{Price: dec("0.125"), Qty: 1}},
			items:    "0.13",
			shipping: "10.00",
			tax:      "0.01",
			total:    "10.14",
		},
		{
			name:     "decimal sums do not drift",
			lines:    []Line{{Price: dec("0.1"), Qty: 1}, {Price: dec("0.2"), Qty: 1}},
			items:    "0.30",
			shipping: "10.00",
			tax:      "0.02",
			total:    "10.32",
		},
		{
			name:     "mixed lines",
			lines:    []Line{{Price: dec("95"), Qty: 1}, {Price: dec("120"), Qty: 1}, {Price: dec("85"), Qty: 2}},
			items:    "385.00",
			shipping: "0.00",
			tax:      "30.80",
			total:    "415.80",
		},
		{
			name:     "free items",
			lines:    []Line{{Price: decimal.Zero, Qty: 3}},
			items:    "0.00",
			shipping: "10.00",
			tax:      "0.00",
			total:    "10.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals, err := policy.Calculate(tt.lines)
			require.NoError(t, err)
			assert.Equal(t, tt.items, totals.ItemsPrice.String())
			assert.Equal(t, tt.shipping, totals.ShippingPrice.String())
			assert.Equal(t, tt.tax, totals.TaxPrice.String())
			assert.Equal(t, tt.total, totals.TotalPrice.String())

			sum := totals.ItemsPrice.Add(totals.ShippingPrice.Decimal).Add(totals.TaxPrice.Decimal)
			assert.True(t, sum.Equal(totals.TotalPrice.Decimal), "total must equal the sum of its parts")
		})
	}
}

func TestCalculate_ShippingIsOneOfTwoValues(t *testing.T) {
	policy := DefaultPolicy()
	for _, price := range []string{"0", "1", "149.99", "150", "150.005", "151", "999.99"} {
		totals, err := policy.Calculate([]Line{{Price: dec(price), Qty: 1}})
		require.NoError(t, err)
		free := totals.ItemsPrice.GreaterThan(policy.FreeShippingThreshold)
		if free {
			assert.True(t, totals.ShippingPrice.IsZero(), price)
		} else {
			assert.True(t, totals.ShippingPrice.Equal(policy.FlatShippingFee), price)
		}
	}
}

func TestCalculate_CustomPolicy(t *testing.T) {
	policy := Policy{
		FreeShippingThreshold: dec("50"),
		FlatShippingFee:       dec("4.99"),
		TaxRate:               dec("0.1"),
	}

	totals, err := policy.Calculate([]Line{{Price: dec("20"), Qty: 2}})
	require.NoError(t, err)
	assert.Equal(t, "40.00", totals.ItemsPrice.String())
	assert.Equal(t, "4.99", totals.ShippingPrice.String())
	assert.Equal(t, "4.00", totals.TaxPrice.String())
	assert.Equal(t, "48.99", totals.TotalPrice.String())
}

func TestCalculate_RejectsInvalidLines(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name  string
		lines []Line
		field string
	}{
		{"negative price", []Line{{Price: dec("-1"), Qty: 1}}, "items[0].price"},
		{"zero qty", []Line{{Price: dec("10"), Qty: 1}, {Price: dec("10"), Qty: 0}}, "items[1].qty"},
		{"negative qty", []Line{{Price: dec("10"), Qty: -2}}, "items[0].qty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := policy.Calculate(tt.lines)
			require.Error(t, err)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestParsePrice(t *testing.T) {
	d, err := ParsePrice(345)
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("345")))

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -0.01} {
		_, err := ParsePrice(bad)
		var vErr *ValidationError
		assert.True(t, errors.As(err, &vErr), "%v should be rejected", bad)
	}
}

func TestValidateQty(t *testing.T) {
	assert.NoError(t, ValidateQty(1))
	assert.Error(t, ValidateQty(0))
	assert.Error(t, ValidateQty(-5))
}

func TestPolicyValidate(t *testing.T) {
	assert.NoError(t, DefaultPolicy().Validate())

	p := DefaultPolicy()
	p.TaxRate = dec("-0.01")
	assert.Error(t, p.Validate())
}

func TestMoneyJSON(t *testing.T) {
	totals, err := DefaultPolicy().Calculate([]Line{{Price: dec("100"), Qty: 1}})
	require.NoError(t, err)

	data, err := json.Marshal(totals)
	require.NoError(t, err)
	assert.JSONEq(t, `{"itemsPrice":100.00,"shippingPrice":10.00,"taxPrice":8.00,"totalPrice":118.00}`, string(data))

	var m Money
	require.NoError(t, json.Unmarshal([]byte(`"12.50"`), &m))
	assert.Equal(t, "12.50", m.String())
	require.NoError(t, json.Unmarshal([]byte(`7.5`), &m))
	assert.Equal(t, "7.50", m.String())
}
