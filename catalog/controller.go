package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/sirupsen/logrus"
)

// ErrSuperseded is returned by Navigate when a newer navigation started while
// this one was waiting on the store. Its results were discarded.
var ErrSuperseded = errors.New("catalog: navigation superseded by a newer request")

// NothingFound is the message attached to an empty product view
const NothingFound = "Nothing found"

// State is where the catalog navigation currently is
type State int

const (
	ShowingRootCategories State = iota
	ShowingSubcategories
	ShowingProducts
)

func (s State) String() string {
	switch s {
	case ShowingRootCategories:
		return "root_categories"
	case ShowingSubcategories:
		return "subcategories"
	case ShowingProducts:
		return "products"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// View is everything the storefront renders for one navigation
type View struct {
	State      State              `json:"state"`
	Params     Params             `json:"params"`
	Category   *models.Category   `json:"category"`
	Path       []models.Crumb     `json:"path"`
	Categories []models.Category  `json:"categories"`
	Facets     []models.Facet     `json:"facets"`
	Selection  Selection          `json:"selection"`
	Products   []models.Product   `json:"products"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
	Message    string             `json:"message,omitempty"`
}

// EmptyView is the fallback shown when nothing could be loaded
func EmptyView(p Params) View {
	return View{
		State:      ShowingRootCategories,
		Params:     p,
		Path:       []models.Crumb{},
		Categories: []models.Category{},
		Facets:     []models.Facet{},
		Selection:  NewSelection(nil, nil, nil),
		Products:   []models.Product{},
		Message:    NothingFound,
	}
}

// Option configures a Controller
type Option func(*Controller)

// WithFacetCache shares derived facets between controllers
func WithFacetCache(fc FacetCache) Option {
	return func(c *Controller) { c.facetCache = fc }
}

// WithTimeout bounds every store round trip of one navigation
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

func WithLogger(log *logrus.Entry) Option {
	return func(c *Controller) { c.log = log }
}

// Controller drives catalog navigation. Each Navigate call re-derives the
// whole view from Params; products are refetched only when entering the
// product listing or when the category scope changes, otherwise the cached
// set is re-evaluated in place.
type Controller struct {
	store      Store
	facetCache FacetCache
	timeout    time.Duration
	log        *logrus.Entry

	mu         sync.Mutex
	generation uint64
	loading    bool
	view       View
	hasView    bool

	// Data the current view was built from.
	facetScope    string
	facets        []models.Facet
	productScope  string
	products      []models.Product
	productsValid bool
}

func NewController(store Store, opts ...Option) *Controller {
	c := &Controller{
		store:   store,
		timeout: 10 * time.Second,
		log:     logrus.WithField("component", "catalog"),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.view = EmptyView(Params{Page: 1, Sort: SortDefault})
	return c
}

// Loading reports whether a navigation is in flight
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// View returns the last committed view
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.State
}

// snapshot is what a navigation reads from the controller when it starts
type snapshot struct {
	gen           uint64
	state         State
	hasView       bool
	facetScope    string
	facets        []models.Facet
	productScope  string
	products      []models.Product
	productsValid bool
}

// Navigate moves the catalog to p. On a store failure the error is logged,
// loading clears and the previous view is returned unchanged alongside the
// error. If a newer Navigate started meanwhile, ErrSuperseded is returned
// and nothing is committed.
func (c *Controller) Navigate(ctx context.Context, p Params) (View, error) {
	c.mu.Lock()
	c.generation++
	snap := snapshot{
		gen:           c.generation,
		state:         c.view.State,
		hasView:       c.hasView,
		facetScope:    c.facetScope,
		facets:        c.facets,
		productScope:  c.productScope,
		products:      c.products,
		productsValid: c.productsValid,
	}
	c.loading = true
	c.mu.Unlock()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	log := c.log.WithFields(logrus.Fields{
		"generation": snap.gen,
		"query":      p.Encode(),
	})

	categories, err := c.store.ListCategories(ctx)
	if err != nil {
		log.WithError(err).Error("failed to load categories")
		return c.fail(snap.gen, err)
	}
	tree := NewTree(categories)

	view := View{
		Params:     p,
		Path:       []models.Crumb{},
		Categories: []models.Category{},
		Products:   []models.Product{},
	}

	var scope []int64
	var selected *int64
	if p.CategoryID != nil {
		if ids, ok := tree.Scope(*p.CategoryID); ok {
			scope = ids
			selected = p.CategoryID
			cat, _ := tree.Get(*selected)
			view.Category = &cat
			view.Path = tree.Path(*selected)
		} else {
			log.WithField("category_id", *p.CategoryID).Info("unknown category, showing catalog root")
		}
	}
	scopeKey := ScopeKey(scope)

	// Facets follow the scope, not the state, so the sidebar is ready before
	// any products are fetched.
	facets := snap.facets
	if !snap.hasView || scopeKey != snap.facetScope {
		facets, err = c.loadFacets(ctx, scope, scopeKey)
		if err != nil {
			log.WithError(err).Error("failed to load filter facets")
			return c.fail(snap.gen, err)
		}
	}
	view.Facets = facets
	view.Selection = NewSelection(selected, p.Filters, facets)

	forced := p.Search != "" || view.Selection.Count() > 0
	switch {
	case selected == nil && !forced:
		view.State = ShowingRootCategories
		view.Categories = tree.Roots()
	case selected != nil && tree.HasChildren(*selected) && !forced:
		view.State = ShowingSubcategories
		view.Categories = tree.Children(*selected)
	default:
		view.State = ShowingProducts
		if selected != nil {
			view.Categories = tree.Children(*selected)
		}
	}

	products := snap.products
	productsValid := snap.productsValid
	if view.State == ShowingProducts {
		entering := snap.state != ShowingProducts || !snap.hasView
		if entering || !productsValid || scopeKey != snap.productScope {
			products, err = c.store.ListProducts(ctx, ProductFilter{CategoryIDs: scope})
			if err != nil {
				log.WithError(err).Error("failed to load products")
				return c.fail(snap.gen, err)
			}
			productsValid = true
		}

		evaluated := Evaluate(products, Criteria{
			CategoryIDs: scope,
			Query:       p.Search,
			Attributes:  view.Selection.Attributes,
			Sort:        p.Sort,
		})
		page := Paginate(evaluated, p.Page, PageSize)
		view.Products = page.Items
		view.Pagination = models.NewPagination(p.Page, PageSize, page.Total)
		if page.Total == 0 {
			view.Message = NothingFound
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if snap.gen != c.generation {
		log.Debug("discarding superseded navigation result")
		return View{}, ErrSuperseded
	}
	c.view = view
	c.hasView = true
	c.loading = false
	c.facetScope = scopeKey
	c.facets = facets
	if view.State == ShowingProducts {
		c.productScope = scopeKey
		c.products = products
		c.productsValid = productsValid
	}
	log.WithFields(logrus.Fields{
		"state":    view.State.String(),
		"products": len(view.Products),
	}).Debug("catalog view committed")
	return view, nil
}

func (c *Controller) fail(gen uint64, err error) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return View{}, ErrSuperseded
	}
	c.loading = false
	return c.view, err
}

func (c *Controller) loadFacets(ctx context.Context, scope []int64, scopeKey string) ([]models.Facet, error) {
	if c.facetCache != nil {
		if facets, ok := c.facetCache.GetFacets(ctx, scopeKey); ok {
			return facets, nil
		}
	}
	rows, err := c.store.ListCharacteristics(ctx, ProductFilter{CategoryIDs: scope})
	if err != nil {
		return nil, err
	}
	facets := ExtractFacets(rows)
	if c.facetCache != nil {
		c.facetCache.SetFacets(ctx, scopeKey, facets)
	}
	return facets, nil
}

// Invalidate forgets cached products and facets so the next Navigate
// refetches them
func (c *Controller) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.facetScope = ""
	c.facets = nil
	c.productScope = ""
	c.products = nil
	c.productsValid = false
	c.hasView = false
}
