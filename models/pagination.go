package models

import (
	"strconv"
	"time"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// PagedResult is the envelope every list endpoint returns.
type PagedResult[T any] struct {
	Size       int `json:"size"`
	Page       int `json:"page"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
	Items      []T `json:"items"`
}

// NewPagedResult wraps one page of items.
func NewPagedResult[T any](items []T, page, size, total int) PagedResult[T] {
	if items == nil {
		items = []T{}
	}
	return PagedResult[T]{
		Size:       size,
		Page:       page,
		Total:      total,
		TotalPages: TotalPages(total, size),
		Items:      items,
	}
}

// TotalPages is ceil(total/size), or 0 when size is not positive.
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Valid reports whether the envelope is internally consistent.
func (p PagedResult[T]) Valid() bool {
	if len(p.Items) > p.Size && p.Size > 0 {
		return false
	}
	if p.Total < len(p.Items) {
		return false
	}
	if p.Size > 0 && p.TotalPages != TotalPages(p.Total, p.Size) {
		return false
	}
	return true
}

// PageParams is the pagination part of every list query.
type PageParams struct {
	PageNumber int `form:"pageNumber" json:"pageNumber,omitempty" validate:"omitempty,gte=1"`
	PageSize   int `form:"pageSize" json:"pageSize,omitempty" validate:"omitempty,gte=1,lte=100"`
}

// Normalize fills in defaults and clamps the page size.
func (p PageParams) Normalize() PageParams {
	if p.PageNumber < 1 {
		p.PageNumber = DefaultPageNumber
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset is the number of rows to skip for this page.
func (p PageParams) Offset() int {
	n := p.Normalize()
	return (n.PageNumber - 1) * n.PageSize
}

// Encode writes the pagination fields into a query map.
func (p PageParams) Encode(q map[string][]string) {
	n := p.Normalize()
	q["pageNumber"] = []string{strconv.Itoa(n.PageNumber)}
	q["pageSize"] = []string{strconv.Itoa(n.PageSize)}
}

// ErrorResponse is the body of every declared error status.
type ErrorResponse struct {
	StatusCode int       `json:"statusCode"`
	Error      string    `json:"error"`
	TimeStamp  time.Time `json:"timeStamp"`
	Details    []string  `json:"details"`
}
