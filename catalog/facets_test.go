package catalog

import (
	"reflect"
	"testing"

	"github.com/IlyaBatulin/lesopilka/models"
)

func chars(pairs ...any) models.Characteristics {
	var c models.Characteristics
	for i := 0; i+1 < len(pairs); i += 2 {
		key := pairs[i].(string)
		switch v := pairs[i+1].(type) {
		case string:
			c.Set(key, models.StringValue(v))
		case float64:
			c.Set(key, models.NumberValue(v))
		case int:
			c.Set(key, models.NumberValue(float64(v)))
		case nil:
			c.Set(key, models.CharacteristicValue{})
		}
	}
	return c
}

func TestExtractFacetsSkipsProductsWithoutKey(t *testing.T) {
	products := []models.Product{
		{ID: 10, Characteristics: chars("grade", "A")},
		{ID: 11, Characteristics: chars("grade", "B")},
		{ID: 12, Characteristics: chars()},
	}

	facets := ExtractFacets(products)
	if len(facets) != 1 {
		t.Fatalf("expected 1 facet, got %d: %+v", len(facets), facets)
	}
	if facets[0].Key != "grade" {
		t.Errorf("key = %q", facets[0].Key)
	}
	if want := []string{"A", "B"}; !reflect.DeepEqual(facets[0].Values, want) {
		t.Errorf("values = %v, want %v", facets[0].Values, want)
	}
}

func TestExtractFacetsSkipsEmptyValues(t *testing.T) {
	products := []models.Product{
		{ID: 1, Characteristics: chars("grade", "", "drying", nil)},
		{ID: 2, Characteristics: chars("grade", "1")},
	}

	facets := ExtractFacets(products)
	if len(facets) != 1 || facets[0].Key != "grade" {
		t.Fatalf("unexpected facets %+v", facets)
	}
	if !reflect.DeepEqual(facets[0].Values, []string{"1"}) {
		t.Errorf("values = %v", facets[0].Values)
	}
}

func TestExtractFacetsKeysAlphabetical(t *testing.T) {
	products := []models.Product{
		{Characteristics: chars("wood_type", "сосна", "grade", "1", "Длина", "6 м")},
	}

	var keys []string
	for _, f := range ExtractFacets(products) {
		keys = append(keys, f.Key)
	}
	if want := []string{"grade", "wood_type", "Длина"}; !reflect.DeepEqual(keys, want) {
		t.Errorf("keys = %v, want %v", keys, want)
	}
}

func TestSortFacetValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		in   []string
		want []string
	}{
		{"numeric", "width", []string{"150", "100", "25.5", "50"}, []string{"25.5", "50", "100", "150"}},
		{"mixed is lexicographic", "grade", []string{"2", "1", "A", "10"}, []string{"1", "10", "2", "A"}},
		{"thickness strips units", "Толщина", []string{"50 мм", "25мм", "100 мм", "19,5 мм"}, []string{"19,5 мм", "25мм", "50 мм", "100 мм"}},
		{"thickness english key", "thickness", []string{"40", "32", "без толщины"}, []string{"32", "40", "без толщины"}},
		{"negative numbers", "temp", []string{"5", "-3", "0"}, []string{"-3", "0", "5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals := append([]string(nil), tt.in...)
			SortFacetValues(tt.key, vals)
			if !reflect.DeepEqual(vals, tt.want) {
				t.Errorf("got %v, want %v", vals, tt.want)
			}
		})
	}
}

// Every facet value comes from some product and every non-empty product value
// shows up in its facet.
func TestExtractFacetsSoundness(t *testing.T) {
	products := []models.Product{
		{ID: 1, Characteristics: chars("grade", "A", "thickness", 50)},
		{ID: 2, Characteristics: chars("grade", "B", "moisture", "dry")},
		{ID: 3, Characteristics: chars("thickness", 25, "moisture", "")},
		{ID: 4},
	}

	facets := ExtractFacets(products)
	byKey := map[string]map[string]bool{}
	for _, f := range facets {
		byKey[f.Key] = map[string]bool{}
		for _, v := range f.Values {
			byKey[f.Key][v] = true
			found := false
			for _, p := range products {
				if pv, ok := p.Characteristics.Get(f.Key); ok && !pv.IsEmpty() && pv.String() == v {
					found = true
				}
			}
			if !found {
				t.Errorf("facet %s value %q has no source product", f.Key, v)
			}
		}
	}
	for _, p := range products {
		for _, ch := range p.Characteristics {
			if ch.Value.IsEmpty() {
				continue
			}
			if !byKey[ch.Key][ch.Value.String()] {
				t.Errorf("product %d value %s=%q missing from facets", p.ID, ch.Key, ch.Value.String())
			}
		}
	}
	if _, ok := byKey["moisture"]; !ok || len(byKey["moisture"]) != 1 {
		t.Errorf("moisture facet should only hold \"dry\": %v", byKey["moisture"])
	}
}

func TestFormatKey(t *testing.T) {
	tests := map[string]string{
		"wood_type":              "Порода",
		"Pieces_Per_Cubic_Meter": "Штук в м³",
		"surface_finish":         "Surface Finish",
		"Толщина":                "Толщина",
		"сорт древесины":         "Сорт Древесины",
	}
	for in, want := range tests {
		if got := FormatKey(in); got != want {
			t.Errorf("FormatKey(%q) = %q, want %q", in, got, want)
		}
	}
}
