package category

import "strings"

// Bucket is one value of the fixed storefront category taxonomy.
type Bucket string

const (
	BucketAll                         Bucket = "all"
	BucketPaints                      Bucket = "paints"
	BucketToolsAccessories            Bucket = "tools-accessories"
	BucketBuildingMaterialsAggregates Bucket = "building-materials-aggregates"
	BucketElectricalSupplies          Bucket = "electrical-supplies"
	BucketPlumbingFixtures            Bucket = "plumbing-fixtures"
	BucketFastenersConsumables        Bucket = "fasteners-consumables"
	BucketOther                       Bucket = "other"
)

type keywordGroup struct {
	bucket   Bucket
	keywords []string
}

// Checked in order; the first group with a keyword contained in the value wins.
var keywordGroups = []keywordGroup{
	{BucketPaints, []string{"paint", "painting"}},
	{BucketToolsAccessories, []string{"power-tools", "powertools", "hand-tools", "handtools", "tool", "tools", "accessor"}},
	{BucketBuildingMaterialsAggregates, []string{"building-materials", "aggregate", "cement", "sand", "gravel", "hollow", "plywood", "wood", "lumber", "tile", "roof"}},
	{BucketElectricalSupplies, []string{"electrical", "wire", "breaker", "outlet", "switch"}},
	{BucketPlumbingFixtures, []string{"plumbing", "fixture", "pipe", "fitting", "faucet", "valve"}},
	{BucketFastenersConsumables, []string{"fastener", "screw", "nail", "bolt", "nut", "consumable", "adhesive", "sealant", "tape"}},
}

// Historical capitalized category names stored before the taxonomy existed.
var legacyNames = map[string]Bucket{
	"Power-Tools":        BucketToolsAccessories,
	"Hand-Tools":         BucketToolsAccessories,
	"Building-Materials": BucketBuildingMaterialsAggregates,
	"Plumbing":           BucketPlumbingFixtures,
	"Electrical":         BucketElectricalSupplies,
}

// Old deep-link slugs still found in bookmarks and navigation links.
var legacySlugs = map[string]Bucket{
	"power-tools":        BucketToolsAccessories,
	"hand-tools":         BucketToolsAccessories,
	"building-materials": BucketBuildingMaterialsAggregates,
	"plumbing":           BucketPlumbingFixtures,
	"electrical":         BucketElectricalSupplies,
}

var orderedBuckets = []Bucket{
	BucketPaints,
	BucketToolsAccessories,
	BucketBuildingMaterialsAggregates,
	BucketElectricalSupplies,
	BucketPlumbingFixtures,
	BucketFastenersConsumables,
	BucketOther,
}

// Normalize maps a raw product category onto a bucket. It never returns BucketAll.
func Normalize(raw string) Bucket {
	val := strings.ToLower(raw)
	for _, g := range keywordGroups {
		for _, k := range g.keywords {
			if strings.Contains(val, k) {
				return g.bucket
			}
		}
	}
	if b, ok := legacyNames[raw]; ok {
		return b
	}
	return BucketOther
}

// NormalizeRequested maps a requested filter slug (query string, deep link)
// onto a bucket. Empty and unknown slugs select everything.
func NormalizeRequested(slug string) Bucket {
	if b, ok := legacySlugs[slug]; ok {
		return b
	}
	if b := Bucket(slug); b == BucketAll || b.Valid() {
		return b
	}
	return BucketAll
}

// Valid reports whether b is a concrete bucket (BucketAll excluded).
func (b Bucket) Valid() bool {
	for _, known := range orderedBuckets {
		if b == known {
			return true
		}
	}
	return false
}

func (b Bucket) String() string {
	return string(b)
}

// Buckets lists the concrete buckets in sidebar order.
func Buckets() []Bucket {
	out := make([]Bucket, len(orderedBuckets))
	copy(out, orderedBuckets)
	return out
}
