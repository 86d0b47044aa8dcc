package catalog

// PageSize is the number of products on one catalog page
const PageSize = 12

// Page is one slice of an evaluated list
type Page[T any] struct {
	Items      []T
	Number     int
	Size       int
	Total      int
	TotalPages int
}

// Paginate returns items[(page-1)*size : page*size]. A page outside
// 1..TotalPages is empty, never an error. size < 1 falls back to PageSize.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size < 1 {
		size = PageSize
	}
	total := len(items)
	p := Page[T]{
		Items:      []T{},
		Number:     page,
		Size:       size,
		Total:      total,
		TotalPages: (total + size - 1) / size,
	}
	if page < 1 || page > p.TotalPages {
		return p
	}

	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	p.Items = items[start:end]
	return p
}
