package pagination

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Params represents pagination and ordering parameters
type Params struct {
	Page    int    `json:"page"`
	Size    int    `json:"size"`
	SortBy  string `json:"sort_by"`
	SortDir string `json:"sort_dir"`
	Offset  int    `json:"-"`
}

// Meta represents pagination metadata
type Meta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// DefaultSize is the default number of items per page
const DefaultSize = 20

// MaxSize is the maximum number of items per page
const MaxSize = 100

// GetParams extracts page/size/sortBy/sortDir from the request. sortBy is
// checked against the allowed column names; anything else falls back to
// defaultSort. sortBy values end up in ORDER BY, so the allowlist is not
// optional.
func GetParams(c *fiber.Ctx, defaultSort string, allowedSorts ...string) *Params {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	size, _ := strconv.Atoi(c.Query("size", strconv.Itoa(DefaultSize)))

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	sortBy := c.Query("sortBy", defaultSort)
	allowed := false
	for _, s := range allowedSorts {
		if s == sortBy {
			allowed = true
			break
		}
	}
	if !allowed {
		sortBy = defaultSort
	}

	sortDir := strings.ToLower(c.Query("sortDir", "desc"))
	if sortDir != "asc" && sortDir != "desc" {
		sortDir = "desc"
	}

	return &Params{
		Page:    page,
		Size:    size,
		SortBy:  sortBy,
		SortDir: sortDir,
		Offset:  (page - 1) * size,
	}
}

// OrderClause returns the validated "column direction" ORDER BY expression.
func (p *Params) OrderClause() string {
	if p.SortBy == "" {
		return "created_at desc"
	}
	return p.SortBy + " " + p.SortDir
}

// GetMeta calculates pagination metadata
func GetMeta(params *Params, total int64) *Meta {
	totalPages := int(total) / params.Size
	if int(total)%params.Size > 0 {
		totalPages++
	}

	return &Meta{
		Page:       params.Page,
		Size:       params.Size,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}

// Response represents a paginated response body
type Response struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta"`
}

// NewResponse creates a new paginated response
func NewResponse(data interface{}, params *Params, total int64) *Response {
	return &Response{
		Data: data,
		Meta: GetMeta(params, total),
	}
}
