package domain

import "math"

const MaxPageLimit = 1000

// MaxPage keeps Offset within a 32-bit signed integer for any limit.
const MaxPage = math.MaxInt32 / MaxPageLimit

// Page is a 1-based pagination request.
type Page struct {
	Page  int
	Limit int
}

// Normalize fills in defaults (page 1 and the given limit) and caps page and
// limit at MaxPage and MaxPageLimit.
func (p Page) Normalize(defaultLimit int) Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func NewPageMeta(p Page, total int64) PageMeta {
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return PageMeta{Total: total, Page: p.Page, Limit: p.Limit, TotalPages: pages}
}

// Paged is a page of items plus its metadata.
type Paged[T any] struct {
	Items []T
	Meta  PageMeta
}
