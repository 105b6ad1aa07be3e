package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
		valid bool
	}{
		{"number", `12.5`, "12.5", true},
		{"string", `" 7.25 "`, "7.25", true},
		{"wrapper string", `{"$numberDecimal":"99.90"}`, "99.9", true},
		{"wrapper number", `{"$numberDecimal":3}`, "3", true},
		{"null", `null`, "", false},
		{"empty", ``, "", false},
		{"garbage string", `"abc"`, "", false},
		{"trailing currency", `"12.50 PHP"`, "", false},
		{"leading currency", `"PHP 12.50"`, "", false},
		{"bool", `true`, "", false},
		{"empty wrapper", `{}`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := ParseDecimal(json.RawMessage(tt.raw))
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Equal(t, tt.want, d.String())
			}
		})
	}
}

func TestPriceCandidateOrder(t *testing.T) {
	data := []byte(`[
		{"id":"1","name":"A","SellingPrice":"n/a","sellingPrice":{"$numberDecimal":"15.00"},"price":10},
		{"id":"2","name":"B","Price":"8","price":9},
		{"id":"3","name":"C","price":"free"},
		{"id":"4","name":"D"}
	]`)

	products, err := DecodeCatalog(data)
	require.NoError(t, err)
	require.Len(t, products, 4)

	assert.True(t, products[0].Price.Valid)
	assert.Equal(t, "15", products[0].Price.Decimal.String())
	assert.Equal(t, "8", products[1].Price.Decimal.String())
	assert.False(t, products[2].Price.Valid, "unparseable price stays absent, not zero")
	assert.False(t, products[3].Price.Valid)
}

func TestToModelFields(t *testing.T) {
	p, err := DecodeProduct([]byte(`{
		"_id":{"$oid":"65f0c0ffee"},
		"name":"Claw Hammer",
		"price":350,
		"stock":"4",
		"category":"Hand-Tools",
		"image":"hammer.png"
	}`))
	require.NoError(t, err)

	assert.Equal(t, "65f0c0ffee", p.ID)
	assert.Equal(t, "Claw Hammer", p.Name)
	assert.Equal(t, 4, p.StockQuantity)
	assert.Equal(t, "Hand-Tools", p.Category)
	assert.Equal(t, "hammer.png", p.Image)
}

func TestStockPrefersStockQuantityAndFloorsAtZero(t *testing.T) {
	p, err := DecodeProduct([]byte(`{"id":7,"stockQuantity":-2,"stock":5}`))
	require.NoError(t, err)
	assert.Equal(t, "7", p.ID)
	assert.Equal(t, 0, p.StockQuantity)

	p, err = DecodeProduct([]byte(`{"id":"8","stock":5}`))
	require.NoError(t, err)
	assert.Equal(t, 5, p.StockQuantity)
}

func TestDecodeCatalogRejectsNonArray(t *testing.T) {
	_, err := DecodeCatalog([]byte(`{"products":[]}`))
	assert.Error(t, err)
}
