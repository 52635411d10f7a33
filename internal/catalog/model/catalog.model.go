package model

import (
	"math"
	"strconv"

	"corneradvisor/store"
)

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 1000
)

// Page is a 1-based page number and page size, both positive.
type Page struct {
	Number int64
	Size   int64
}

// ParsePage reads the page and size query values. Missing, non-numeric and
// non-positive values fall back to the defaults. Size is capped at MaxSize.
func ParsePage(page, size string) Page {
	return Page{
		Number: positiveOr(page, DefaultPage),
		Size:   min(positiveOr(size, DefaultSize), MaxSize),
	}
}

// Skip is the number of records before this page. Pages too far out to
// address saturate at math.MaxInt64, which selects nothing.
func (p Page) Skip() int64 {
	if p.Number <= 1 || p.Size <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt64/p.Size {
		return math.MaxInt64
	}
	return (p.Number - 1) * p.Size
}

// TotalPages is ceil(count/size).
func TotalPages(count, size int64) int64 {
	if size <= 0 || count <= 0 {
		return 0
	}
	total := count / size
	if count%size != 0 {
		total++
	}
	return total
}

type Pagination struct {
	Total   int64 `json:"total"`
	Current int64 `json:"current"`
}

type ServiceList struct {
	Data       []store.Document `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

func positiveOr(s string, def int64) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 {
		return def
	}
	return n
}
