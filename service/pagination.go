package service

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Pagination describes where a page sits in the full result set
type Pagination struct {
	Page         int `json:"page"`
	PerPage      int `json:"perpage"`
	TotalRecords int `json:"totalRecords"`
	TotalPages   int `json:"totalPages"`
}

// normalizePage applies defaults to zero values and rejects out of range values
func normalizePage(page, perPage int) (int, int, error) {
	if page == 0 {
		page = DefaultPage
	}
	if perPage == 0 {
		perPage = DefaultPerPage
	}
	if page < 1 {
		return 0, 0, invalid("page", "page must be at least 1")
	}
	if perPage < 1 || perPage > MaxPerPage {
		return 0, 0, invalid("perpage", "perpage must be between 1 and 100")
	}
	return page, perPage, nil
}

func pageOffset(page, perPage int) int {
	return (page - 1) * perPage
}

// totalPages is never below 1 so an empty listing still reports one page
func totalPages(totalRecords, perPage int) int {
	pages := (totalRecords + perPage - 1) / perPage
	if pages < 1 {
		return 1
	}
	return pages
}
