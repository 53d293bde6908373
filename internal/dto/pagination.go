package dto

// Pagination defaults.
const (
	DefaultLimit  = 10
	DefaultOffset = 0
)

// Pagination is the offset/limit window read from the query string.
type Pagination struct {
	Limit  *int `validate:"omitempty,min=1"`
	Offset *int `validate:"omitempty,min=0"`
}

// Values returns limit and offset with defaults applied.
func (p Pagination) Values() (limit, offset int) {
	limit, offset = DefaultLimit, DefaultOffset
	if p.Limit != nil {
		limit = *p.Limit
	}
	if p.Offset != nil {
		offset = *p.Offset
	}
	return limit, offset
}
