package shared

// Filter represents query filter options.
// Filters holds exact-match conditions keyed by column name.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Filters  map[string]string
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 10,
		OrderBy:  "id",
		OrderDir: "asc",
		Filters:  make(map[string]string),
	}
}

// Offset returns the number of rows to skip for the current page.
func (f Filter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}
