package models

// Page is the envelope returned by every list endpoint. TotalRecords counts
// all rows in the table regardless of pagination; TotalPages is
// ceil(TotalRecords / PageSize).
type Page[T any] struct {
	TotalRecords int64 `json:"totalRecords"`
	PageNumber   int   `json:"pageNumber"`
	PageSize     int   `json:"pageSize"`
	TotalPages   int   `json:"totalPages"`
	Data         []T   `json:"data"`
}

// NewPage computes the envelope arithmetic for one page of rows.
func NewPage[T any](rows []T, total int64, pageNumber, pageSize int) Page[T] {
	totalPages := int(total / int64(pageSize))
	if total%int64(pageSize) != 0 {
		totalPages++
	}
	if rows == nil {
		rows = []T{}
	}
	return Page[T]{
		TotalRecords: total,
		PageNumber:   pageNumber,
		PageSize:     pageSize,
		TotalPages:   totalPages,
		Data:         rows,
	}
}
