package models

// DashboardQuery carries the grade/gender filter plus table pagination.
type DashboardQuery struct {
	Grade  string `query:"grade"`
	Gender string `query:"gender"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Sort   string `query:"sort"` // "average_desc", "average_asc", "name_asc"; empty keeps input order
	N      int    `query:"n"`
}

type PaginationMeta struct {
	CurrentPage int `json:"currentPage"`
	TotalPage   int `json:"totalPage"`
	TotalData   int `json:"totalData"`
	Limit       int `json:"limit"`
}

type PaginatedResponse struct {
	Data []EnrichedRecord `json:"data"`
	Meta PaginationMeta   `json:"meta"`
}

// DataResponse wraps every dashboard payload. Data is nil and Message is set
// when the filtered set is empty.
type DataResponse struct {
	Snapshot string      `json:"snapshot"`
	Filter   FilterEcho  `json:"filter"`
	Data     interface{} `json:"data"`
	Message  string      `json:"message,omitempty"`
}

type FilterEcho struct {
	Grade  string `json:"grade,omitempty"`
	Gender string `json:"gender,omitempty"`
}
