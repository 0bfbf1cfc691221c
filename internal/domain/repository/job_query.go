package repository

// SortField is a column jobs can be ordered by.
type SortField string

const (
	SortByID      SortField = "id"
	SortByTitle   SortField = "title"
	SortByCompany SortField = "company"
)

// IsValid reports whether the field is in the sortable whitelist.
func (f SortField) IsValid() bool {
	switch f {
	case SortByID, SortByTitle, SortByCompany:
		return true
	default:
		return false
	}
}

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// IsValid reports whether the order is asc or desc.
func (o SortOrder) IsValid() bool {
	return o == SortAsc || o == SortDesc
}

// JobFilter narrows a job listing. Empty fields are ignored; every non-empty
// field must match (case-insensitive substring). Search matches title OR company.
type JobFilter struct {
	Title   string
	Company string
	Search  string
}

// Pagination is an offset/limit window.
type Pagination struct {
	Skip  int
	Limit int
}

// JobSort orders a job listing.
type JobSort struct {
	Field SortField
	Order SortOrder
}

// JobQuery combines filter, sort and pagination for a job listing.
type JobQuery struct {
	Filter JobFilter
	Sort   JobSort
	Page   Pagination
}
