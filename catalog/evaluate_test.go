package catalog

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/shopspring/decimal"
)

func ids(products []models.Product) []int64 {
	out := []int64{}
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func strPtr(s string) *string { return &s }

func TestEvaluateEmptyValueSetIsNoop(t *testing.T) {
	products := []models.Product{
		{ID: 10, Characteristics: chars("grade", "A")},
		{ID: 11, Characteristics: chars("grade", "B")},
		{ID: 12, Characteristics: chars()},
		{ID: 13, Characteristics: chars("grade", "A", "moisture", "dry")},
	}

	got := Evaluate(products, Criteria{
		Attributes: map[string][]string{"grade": {"A"}, "moisture": {}},
	})
	if want := []int64{10, 13}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
}

func TestEvaluateSearchIsSubstringOnly(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Дубовая доска"},
	}

	if got := Evaluate(products, Criteria{Query: "оак"}); len(got) != 0 {
		t.Fatalf("expected no match, got %v", ids(got))
	}
	if got := Evaluate(products, Criteria{Query: "ДУБОВ"}); len(got) != 1 {
		t.Fatalf("case-insensitive search should match, got %v", ids(got))
	}
}

func TestEvaluateSearchDescription(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Брус 100x100", Description: strPtr("Камерная сушка")},
		{ID: 2, Name: "Брус 150x150"},
	}

	got := Evaluate(products, Criteria{Query: "сушка"})
	if !reflect.DeepEqual(ids(got), []int64{1}) {
		t.Errorf("got %v", ids(got))
	}
}

func TestEvaluateAndAcrossKeysOrWithin(t *testing.T) {
	grades := []string{"A", "B", "C"}
	moistures := []string{"dry", "wet"}
	var products []models.Product
	id := int64(1)
	for _, g := range grades {
		for _, m := range moistures {
			products = append(products, models.Product{ID: id, Characteristics: chars("grade", g, "moisture", m)})
			id++
		}
	}
	products = append(products, models.Product{ID: id, Characteristics: chars("grade", "A")})

	sel := map[string][]string{"grade": {"A", "C"}, "moisture": {"dry"}}
	got := Evaluate(products, Criteria{Attributes: sel})

	for _, p := range products {
		g, gok := p.Characteristics.Get("grade")
		m, mok := p.Characteristics.Get("moisture")
		want := gok && mok &&
			(g.String() == "A" || g.String() == "C") &&
			m.String() == "dry"
		has := false
		for _, r := range got {
			if r.ID == p.ID {
				has = true
			}
		}
		if has != want {
			t.Errorf("product %d: included=%v, want %v", p.ID, has, want)
		}
	}
}

func TestEvaluateNumericCharacteristicsCompareAsStrings(t *testing.T) {
	products := []models.Product{
		{ID: 1, Characteristics: chars("width", 150)},
		{ID: 2, Characteristics: chars("width", 100)},
		{ID: 3, Characteristics: chars("width", 2.5)},
	}

	got := Evaluate(products, Criteria{Attributes: map[string][]string{"width": {"150", "2.5"}}})
	if !reflect.DeepEqual(ids(got), []int64{1, 3}) {
		t.Errorf("got %v", ids(got))
	}
}

func TestEvaluateAttributeMatchIsCaseSensitive(t *testing.T) {
	products := []models.Product{{ID: 1, Characteristics: chars("grade", "a")}}
	if got := Evaluate(products, Criteria{Attributes: map[string][]string{"grade": {"A"}}}); len(got) != 0 {
		t.Errorf("expected case-sensitive mismatch, got %v", ids(got))
	}
}

func TestEvaluateCategoryScope(t *testing.T) {
	products := []models.Product{
		{ID: 1, CategoryID: 2},
		{ID: 2, CategoryID: 3},
		{ID: 3, CategoryID: 9},
	}

	got := Evaluate(products, Criteria{CategoryIDs: []int64{1, 2, 3}})
	if !reflect.DeepEqual(ids(got), []int64{1, 2}) {
		t.Errorf("got %v", ids(got))
	}
	if got := Evaluate(products, Criteria{}); len(got) != 3 {
		t.Errorf("no scope should keep everything, got %v", ids(got))
	}
}

func TestEvaluateSortStability(t *testing.T) {
	var products []models.Product
	for i := 1; i <= 8; i++ {
		products = append(products, models.Product{
			ID:    int64(i),
			Name:  fmt.Sprintf("Доска %d", 9-i),
			Price: decimal.NewFromInt(int64(i * 100)),
		})
	}

	def := Evaluate(products, Criteria{Sort: SortDefault})
	if !reflect.DeepEqual(ids(def), []int64{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("default reordered: %v", ids(def))
	}

	asc := ids(Evaluate(products, Criteria{Sort: SortPriceAsc}))
	desc := ids(Evaluate(products, Criteria{Sort: SortPriceDesc}))
	for i := range asc {
		if asc[i] != desc[len(desc)-1-i] {
			t.Fatalf("price-desc is not the reverse of price-asc: %v vs %v", asc, desc)
		}
	}

	byName := ids(Evaluate(products, Criteria{Sort: SortNameAsc}))
	if !reflect.DeepEqual(byName, []int64{8, 7, 6, 5, 4, 3, 2, 1}) {
		t.Errorf("name-asc = %v", byName)
	}
}

func TestEvaluateSortTiesKeepOrder(t *testing.T) {
	products := []models.Product{
		{ID: 1, Price: decimal.NewFromInt(100)},
		{ID: 2, Price: decimal.NewFromInt(50)},
		{ID: 3, Price: decimal.NewFromInt(100)},
		{ID: 4, Price: decimal.Zero},
	}

	got := ids(Evaluate(products, Criteria{Sort: SortPriceAsc}))
	if want := []int64{4, 2, 1, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEvaluateNameSortUsesRussianCollation(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Ясень"},
		{ID: 2, Name: "Брус"},
		{ID: 3, Name: "арка"},
		{ID: 4, Name: "Дуб"},
	}

	got := ids(Evaluate(products, Criteria{Sort: SortNameAsc}))
	if want := []int64{3, 2, 4, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("name-asc = %v, want %v", got, want)
	}
	gotDesc := ids(Evaluate(products, Criteria{Sort: SortNameDesc}))
	if want := []int64{1, 4, 2, 3}; !reflect.DeepEqual(gotDesc, want) {
		t.Errorf("name-desc = %v, want %v", gotDesc, want)
	}
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	products := []models.Product{
		{ID: 1, Price: decimal.NewFromInt(3)},
		{ID: 2, Price: decimal.NewFromInt(1)},
	}
	Evaluate(products, Criteria{Sort: SortPriceAsc})
	if products[0].ID != 1 {
		t.Error("input slice was reordered")
	}
}

func TestParseSortMode(t *testing.T) {
	for in, want := range map[string]SortMode{
		"price-asc": SortPriceAsc,
		"name-desc": SortNameDesc,
		"":          SortDefault,
		"random":    SortDefault,
	} {
		if got := ParseSortMode(in); got != want {
			t.Errorf("ParseSortMode(%q) = %q, want %q", in, got, want)
		}
	}
}
