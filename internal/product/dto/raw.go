package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/shopspring/decimal"
)

// Price candidates in preference order. Keys are matched exactly because the
// upstream documents carry both spellings of SellingPrice.
var priceFields = []string{"SellingPrice", "sellingPrice", "Price", "price"}

var stockFields = []string{"stockQuantity", "stock"}

// RawProduct is one catalog document as served by the upstream source.
type RawProduct map[string]json.RawMessage

// DecodeCatalog parses a JSON array of raw product documents.
func DecodeCatalog(data []byte) ([]model.Product, error) {
	var raws []RawProduct
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	products := make([]model.Product, 0, len(raws))
	for _, r := range raws {
		products = append(products, r.ToModel())
	}
	return products, nil
}

// DecodeProduct parses a single raw product document.
func DecodeProduct(data []byte) (*model.Product, error) {
	var r RawProduct
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}
	p := r.ToModel()
	return &p, nil
}

func (r RawProduct) ToModel() model.Product {
	return model.Product{
		ID:            r.id(),
		Name:          r.str("name"),
		Price:         r.Price(),
		StockQuantity: r.Stock(),
		Category:      r.str("category"),
		Image:         r.str("image"),
	}
}

// Price returns the first parseable candidate, or an invalid NullDecimal.
func (r RawProduct) Price() decimal.NullDecimal {
	for _, f := range priceFields {
		if d, ok := ParseDecimal(r[f]); ok {
			return decimal.NullDecimal{Decimal: d, Valid: true}
		}
	}
	return decimal.NullDecimal{}
}

// Stock returns the first parseable stock field, floored at zero.
func (r RawProduct) Stock() int {
	for _, f := range stockFields {
		if d, ok := ParseDecimal(r[f]); ok {
			n := int(d.IntPart())
			if n < 0 {
				return 0
			}
			return n
		}
	}
	return 0
}

func (r RawProduct) id() string {
	if id := r.str("id"); id != "" {
		return id
	}
	raw, ok := r["_id"]
	if !ok {
		return ""
	}
	var oid struct {
		OID string `json:"$oid"`
	}
	if err := json.Unmarshal(raw, &oid); err == nil && oid.OID != "" {
		return oid.OID
	}
	return scalarString(raw)
}

func (r RawProduct) str(key string) string {
	return scalarString(r[key])
}

// scalarString renders a JSON string or number as text; anything else is "".
func scalarString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// ParseDecimal accepts a JSON number, a numeric string or a decimal wrapper
// object ({"$numberDecimal": "12.50"}). Everything else is not a number.
func ParseDecimal(raw json.RawMessage) (decimal.Decimal, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Decimal{}, false
	}

	switch raw[0] {
	case '{':
		var wrapper struct {
			NumberDecimal json.RawMessage `json:"$numberDecimal"`
		}
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return decimal.Decimal{}, false
		}
		return ParseDecimal(wrapper.NumberDecimal)
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Decimal{}, false
		}
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	default:
		d, err := decimal.NewFromString(string(raw))
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	}
}
