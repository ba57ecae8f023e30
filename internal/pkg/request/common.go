package request

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ByIDRequest is a common struct for endpoints that require a UUID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// BySlugRequest is for catalogue entries whose ids are human-readable slugs.
type BySlugRequest struct {
	ID string `uri:"id" binding:"required,max=64"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxPage         = 100000
)

// ListParams carries pagination query parameters shared by list endpoints.
type ListParams struct {
	Page     int `form:"page" binding:"omitempty,min=1,max=100000"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Normalize fills in defaults and clamps values to the allowed range.
func (p ListParams) Normalize() ListParams {
	p.Page = max(1, min(p.Page, MaxPage))
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	p.PageSize = min(p.PageSize, MaxPageSize)
	return p
}

// Offset returns the number of items to skip for the current page.
func (p ListParams) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}

// Window returns the slice bounds of the current page within total items.
// Pages past the end yield an empty window.
func (p ListParams) Window(total int) (start, end int) {
	n := p.Normalize()
	start = n.Offset()
	if start < 0 || start >= total {
		return total, total
	}
	return start, min(start+n.PageSize, total)
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
