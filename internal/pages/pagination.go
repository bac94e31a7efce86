package pages

import "math"

const (
	DefaultPageSize = 12
	MaxPageSize     = 48
)

// Calculate turns a 1-based page into an offset. Pages beyond what an int
// offset can address are pinned to the last addressable one.
func Calculate(page, size int) (offset, limit int) {
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	if maxPage := math.MaxInt/size - 1; page > maxPage {
		page = maxPage
	}
	offset = (page - 1) * size
	return offset, size
}

type Pager struct {
	Page       int
	Size       int
	Total      int64
	TotalPages int64
	HasPrev    bool
	HasNext    bool
}

// NewPager clamps page into [1, TotalPages].
func NewPager(page, size int, total int64) Pager {
	_, limit := Calculate(1, size)
	totalPages := (total + int64(limit) - 1) / int64(limit)
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && int64(page) > totalPages {
		page = int(totalPages)
	}
	if totalPages == 0 {
		page = 1
	}
	offset, _ := Calculate(page, limit)
	return Pager{
		Page:       page,
		Size:       limit,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    int64(offset+limit) < total,
	}
}

func (p Pager) Prev() int { return p.Page - 1 }
func (p Pager) Next() int { return p.Page + 1 }
