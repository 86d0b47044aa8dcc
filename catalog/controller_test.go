package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/shopspring/decimal"
)

type fakeStore struct {
	mu         sync.Mutex
	categories []models.Category
	products   []models.Product

	productCalls int
	charCalls    int
	failProducts error

	// when set, ListProducts blocks until release is closed
	block   chan struct{}
	release chan struct{}
}

func (s *fakeStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories, nil
}

func (s *fakeStore) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	s.mu.Lock()
	s.productCalls++
	block, release, fail := s.block, s.release, s.failProducts
	s.mu.Unlock()

	if block != nil {
		close(block)
		<-release
	}
	if fail != nil {
		return nil, fail
	}
	return s.filter(filter), nil
}

func (s *fakeStore) ListCharacteristics(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	s.mu.Lock()
	s.charCalls++
	s.mu.Unlock()
	return s.filter(filter), nil
}

func (s *fakeStore) filter(f ProductFilter) []models.Product {
	if len(f.CategoryIDs) == 0 {
		return append([]models.Product(nil), s.products...)
	}
	in := map[int64]bool{}
	for _, id := range f.CategoryIDs {
		in[id] = true
	}
	var out []models.Product
	for _, p := range s.products {
		if in[p.CategoryID] {
			out = append(out, p)
		}
	}
	return out
}

func (s *fakeStore) calls() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.productCalls, s.charCalls
}

// Lumber(1) -> Boards(2), Beams(3); Tools(4) has no children
func newFakeStore() *fakeStore {
	return &fakeStore{
		categories: []models.Category{
			cat(1, "Lumber", nil, pos(1)),
			cat(2, "Boards", i64(1), nil),
			cat(3, "Beams", i64(1), nil),
			cat(4, "Tools", nil, pos(2)),
		},
		products: []models.Product{
			{ID: 10, Name: "Доска обрезная", CategoryID: 2, Price: decimal.NewFromInt(300), Characteristics: chars("grade", "A")},
			{ID: 11, Name: "Доска строганая", CategoryID: 2, Price: decimal.NewFromInt(500), Characteristics: chars("grade", "B")},
			{ID: 12, Name: "Брус", CategoryID: 3, Price: decimal.NewFromInt(800)},
			{ID: 13, Name: "Топор", CategoryID: 4, Price: decimal.NewFromInt(1500), Characteristics: chars("weight", 1.2)},
		},
	}
}

func params(category *int64) Params {
	return Params{CategoryID: category, Page: 1, Sort: SortDefault, Filters: map[string][]string{}}
}

func TestNavigateStates(t *testing.T) {
	store := newFakeStore()
	c := NewController(store)
	ctx := context.Background()

	view, err := c.Navigate(ctx, params(nil))
	if err != nil {
		t.Fatal(err)
	}
	if view.State != ShowingRootCategories {
		t.Fatalf("state = %v", view.State)
	}
	if len(view.Categories) != 2 || view.Categories[0].ID != 1 {
		t.Errorf("root categories = %+v", view.Categories)
	}
	if pc, _ := store.calls(); pc != 0 {
		t.Errorf("root view must not fetch products, got %d calls", pc)
	}

	view, err = c.Navigate(ctx, params(i64(1)))
	if err != nil {
		t.Fatal(err)
	}
	if view.State != ShowingSubcategories {
		t.Fatalf("state = %v", view.State)
	}
	if len(view.Facets) != 1 || view.Facets[0].Key != "grade" {
		t.Errorf("subcategory view should carry facets of its scope: %+v", view.Facets)
	}
	if len(view.Path) != 1 || view.Path[0].ID != 1 {
		t.Errorf("path = %+v", view.Path)
	}

	view, err = c.Navigate(ctx, params(i64(4)))
	if err != nil {
		t.Fatal(err)
	}
	if view.State != ShowingProducts {
		t.Fatalf("leaf category state = %v", view.State)
	}
	if len(view.Products) != 1 || view.Products[0].ID != 13 {
		t.Errorf("products = %+v", view.Products)
	}
	if c.Loading() {
		t.Error("loading must clear after commit")
	}
}

func TestNavigateFiltersForceProducts(t *testing.T) {
	store := newFakeStore()
	c := NewController(store)

	p := params(i64(1))
	p.Filters = map[string][]string{"grade": {"A"}}
	view, err := c.Navigate(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if view.State != ShowingProducts {
		t.Fatalf("state = %v", view.State)
	}
	if len(view.Products) != 1 || view.Products[0].ID != 10 {
		t.Errorf("products = %+v", view.Products)
	}
	if len(view.Categories) != 2 {
		t.Errorf("subcategories should stay visible, got %d", len(view.Categories))
	}
}

func TestNavigateSearchFromRoot(t *testing.T) {
	c := NewController(newFakeStore())
	p := params(nil)
	p.Search = "доска"

	view, err := c.Navigate(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if view.State != ShowingProducts || len(view.Products) != 2 {
		t.Fatalf("state=%v products=%d", view.State, len(view.Products))
	}
	if view.Pagination == nil || view.Pagination.Total != 2 {
		t.Errorf("pagination = %+v", view.Pagination)
	}

	p.Search = "дуб"
	view, err = c.Navigate(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if view.Message != NothingFound || len(view.Products) != 0 {
		t.Errorf("expected empty result with message, got %+v", view)
	}
}

func TestNavigateReusesProductsWithinScope(t *testing.T) {
	store := newFakeStore()
	c := NewController(store)
	ctx := context.Background()

	p := params(i64(2))
	if _, err := c.Navigate(ctx, p); err != nil {
		t.Fatal(err)
	}
	p.Sort = SortPriceDesc
	if _, err := c.Navigate(ctx, p); err != nil {
		t.Fatal(err)
	}
	p.Filters = map[string][]string{"grade": {"B"}}
	view, err := c.Navigate(ctx, p)
	if err != nil {
		t.Fatal(err)
	}
	if pc, cc := store.calls(); pc != 1 || cc != 1 {
		t.Errorf("store calls products=%d characteristics=%d, want 1 and 1", pc, cc)
	}
	if len(view.Products) != 1 || view.Products[0].ID != 11 {
		t.Errorf("products = %+v", view.Products)
	}

	// new scope refetches
	if _, err := c.Navigate(ctx, params(i64(4))); err != nil {
		t.Fatal(err)
	}
	if pc, cc := store.calls(); pc != 2 || cc != 2 {
		t.Errorf("after scope change products=%d characteristics=%d", pc, cc)
	}

	c.Invalidate()
	if _, err := c.Navigate(ctx, params(i64(4))); err != nil {
		t.Fatal(err)
	}
	if pc, _ := store.calls(); pc != 3 {
		t.Errorf("Invalidate should force a refetch, calls = %d", pc)
	}
}

func TestNavigateFailureKeepsPreviousView(t *testing.T) {
	store := newFakeStore()
	c := NewController(store)
	ctx := context.Background()

	before, err := c.Navigate(ctx, params(i64(1)))
	if err != nil {
		t.Fatal(err)
	}

	boom := errors.New("connection reset")
	store.mu.Lock()
	store.failProducts = boom
	store.mu.Unlock()

	got, err := c.Navigate(ctx, params(i64(4)))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if got.State != before.State || c.State() != ShowingSubcategories {
		t.Errorf("view changed on failure: %v", got.State)
	}
	if c.Loading() {
		t.Error("loading must clear after failure")
	}
}

func TestNavigateUnknownCategoryShowsRoot(t *testing.T) {
	c := NewController(newFakeStore())
	view, err := c.Navigate(context.Background(), params(i64(999)))
	if err != nil {
		t.Fatal(err)
	}
	if view.State != ShowingRootCategories || view.Category != nil {
		t.Errorf("state=%v category=%v", view.State, view.Category)
	}
}

func TestNavigateSupersededResultIsDiscarded(t *testing.T) {
	store := newFakeStore()
	c := NewController(store)
	ctx := context.Background()

	block, release := make(chan struct{}), make(chan struct{})
	store.block, store.release = block, release

	slow := make(chan error, 1)
	go func() {
		_, err := c.Navigate(ctx, params(i64(2)))
		slow <- err
	}()
	<-block

	store.mu.Lock()
	store.block, store.release = nil, nil
	store.mu.Unlock()

	view, err := c.Navigate(ctx, params(i64(1)))
	if err != nil {
		t.Fatal(err)
	}
	if view.State != ShowingSubcategories {
		t.Fatalf("state = %v", view.State)
	}

	close(release)
	if err := <-slow; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("slow navigation err = %v, want ErrSuperseded", err)
	}
	if c.State() != ShowingSubcategories {
		t.Errorf("superseded result was committed: %v", c.State())
	}
}
