package domain

// FilterOp is a backend-independent predicate operator.
type FilterOp string

const (
	// OpEq matches exact equality.
	OpEq FilterOp = "eq"
	// OpContains matches a case-insensitive substring. On the virtual
	// "search" field it spans both title and content.
	OpContains FilterOp = "contains"
	// OpIn matches set membership; Value is a slice.
	OpIn FilterOp = "in"
	// OpIsNull matches fields without a value; Value is a bool (true for
	// null, false for not-null).
	OpIsNull FilterOp = "isnull"
)

// Filter is a structured predicate the store adapters translate into their
// own query syntax. Field names are the semantic snake_case names shared by
// both schemas (status, author_id, category_id, tag_id, is_featured, search).
type Filter struct {
	Field string
	Op    FilterOp
	Value any
}

// SortDirection orders query results.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort names a field and a direction.
type Sort struct {
	Field     string
	Direction SortDirection
}

// Pagination is 1-based. Limit is capped by the configured maximum.
type Pagination struct {
	Page  int
	Limit int
}

// Normalize clamps page and limit into valid bounds.
func (p Pagination) Normalize(maxLimit int) Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// Offset converts the page/limit pair into a row offset.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}
