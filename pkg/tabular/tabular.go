// Package tabular implements the shared list-view query contract: a raw,
// untyped query-string bag becomes one filtered, searched, sorted, paginated
// page of rows plus the total count over the same predicate set.
package tabular

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"gorm.io/gorm"
)

// ErrStorageUnavailable wraps any storage failure surfaced by List. Callers
// report it generically and log the wrapped detail; it is never retried here.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Config tunes pagination. Passed in at construction rather than read from
// ambient env so tests and callers see the limits explicitly.
type Config struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Params is the recognized query-string surface of every list endpoint.
type Params struct {
	FilterColumn string
	FilterValue  string
	Search       string
	SortColumn   string
	SortDesc     bool
	Page         int
	PageSize     int
}

// ParseParams reads the recognized keys out of a URL query. Unparseable page
// and pageSize values degrade to defaults; pageSize is capped at
// cfg.MaxPageSize.
func ParseParams(q url.Values, cfg Config) Params {
	p := Params{
		FilterColumn: q.Get("filterColumn"),
		FilterValue:  q.Get("filterValue"),
		Search:       q.Get("search"),
		SortColumn:   q.Get("sortColumn"),
		SortDesc:     q.Get("sortDirection") == "desc",
		Page:         1,
		PageSize:     cfg.DefaultPageSize,
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page >= 1 {
		p.Page = page
	}
	if size, err := strconv.Atoi(q.Get("pageSize")); err == nil && size >= 1 {
		p.PageSize = size
	}
	if cfg.MaxPageSize > 0 && p.PageSize > cfg.MaxPageSize {
		p.PageSize = cfg.MaxPageSize
	}
	return p
}

// Result is the page metadata returned alongside the rows.
type Result struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

// Pages returns the page count for the result's total and page size.
func (r *Result) Pages() int64 {
	if r.PageSize <= 0 {
		return 0
	}
	return (r.Total + int64(r.PageSize) - 1) / int64(r.PageSize)
}

// Offset converts a 1-based page into the row offset for its first row.
func Offset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}

// Service runs tabular queries against one gorm connection.
type Service struct {
	db  *gorm.DB
	cfg Config
}

func NewService(db *gorm.DB, cfg Config) *Service {
	return &Service{db: db, cfg: cfg}
}

// Config exposes the pagination settings the service was built with.
func (s *Service) Config() Config {
	return s.cfg
}

// List fills dest (a pointer to a slice of the schema's model) with one page
// of rows and returns the total count across all pages. The count runs on the
// exact predicate set used for the rows, before limit/offset, so page math
// from Total never diverges from the rows themselves. Read-only.
func (s *Service) List(schema Schema, p Params, dest interface{}) (*Result, error) {
	tx := s.db.Model(dest)
	tx = schema.applyFilter(tx, p.FilterColumn, p.FilterValue)
	tx = schema.applySearch(tx, p.Search)

	// the count runs on its own statement so the row query below starts from
	// the shared predicates untouched
	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("%w: count: %v", ErrStorageUnavailable, err)
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	size := p.PageSize
	if size < 1 {
		size = s.cfg.DefaultPageSize
	}

	for _, preload := range schema.Preloads {
		tx = tx.Preload(preload)
	}
	if err := tx.Order(schema.orderClause(p.SortColumn, p.SortDesc)).
		Limit(size).Offset(Offset(page, size)).Find(dest).Error; err != nil {
		return nil, fmt.Errorf("%w: find: %v", ErrStorageUnavailable, err)
	}

	return &Result{Total: total, Page: page, PageSize: size}, nil
}

// All fills dest with every row matching the params' filter and search, in
// the requested order, with no pagination. Exports use it so a download
// carries the same predicate set the list view showed.
func (s *Service) All(schema Schema, p Params, dest interface{}) error {
	tx := s.db.Model(dest)
	tx = schema.applyFilter(tx, p.FilterColumn, p.FilterValue)
	tx = schema.applySearch(tx, p.Search)
	if err := tx.Order(schema.orderClause(p.SortColumn, p.SortDesc)).Find(dest).Error; err != nil {
		return fmt.Errorf("%w: find: %v", ErrStorageUnavailable, err)
	}
	return nil
}
