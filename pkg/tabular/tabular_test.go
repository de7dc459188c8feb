package tabular

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils/tests"
)

var testCfg = Config{DefaultPageSize: 10, MaxPageSize: 100}

func TestParseParams(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected Params
	}{
		{
			"empty query gets defaults",
			"",
			Params{Page: 1, PageSize: 10},
		},
		{
			"full set",
			"filterColumn=Price+(AED)&filterValue=900K&search=marina&sortColumn=ROI&sortDirection=desc&page=3&pageSize=25",
			Params{FilterColumn: "Price (AED)", FilterValue: "900K", Search: "marina", SortColumn: "ROI", SortDesc: true, Page: 3, PageSize: 25},
		},
		{
			"unparseable page and pageSize degrade to defaults",
			"page=abc&pageSize=xyz",
			Params{Page: 1, PageSize: 10},
		},
		{
			"zero and negative coerce to defaults",
			"page=0&pageSize=-5",
			Params{Page: 1, PageSize: 10},
		},
		{
			"pageSize capped at max",
			"pageSize=5000",
			Params{Page: 1, PageSize: 100},
		},
		{
			"sortDirection defaults to ascending",
			"sortColumn=Location&sortDirection=sideways",
			Params{SortColumn: "Location", SortDesc: false, Page: 1, PageSize: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			require.Equal(t, tt.expected, ParseParams(q, testCfg))
		})
	}
}

func TestOffset(t *testing.T) {
	// page 2 of size 10 starts at row 10, i.e. ranks 11-20
	require.Equal(t, 10, Offset(2, 10))
	require.Equal(t, 0, Offset(1, 10))
	require.Equal(t, 0, Offset(0, 10))
	require.Equal(t, 0, Offset(-3, 10))
	require.Equal(t, 40, Offset(3, 20))
}

func TestResultPages(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		pages    int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{100, 100, 1},
	}
	for _, tt := range tests {
		r := Result{Total: tt.total, PageSize: tt.pageSize}
		require.Equal(t, tt.pages, r.Pages(), "total=%d size=%d", tt.total, tt.pageSize)
	}
}

// Page math never diverges from the count: the pages sum back to the total
// and the last page never under- or overflows.
func TestPaginationConsistency(t *testing.T) {
	for _, total := range []int64{0, 1, 9, 10, 11, 25, 99, 100} {
		for _, size := range []int{1, 7, 10, 25} {
			r := Result{Total: total, PageSize: size}
			pages := r.Pages()

			var sum int64
			for page := int64(1); page <= pages; page++ {
				rows := total - int64(Offset(int(page), size))
				if rows > int64(size) {
					rows = int64(size)
				}
				require.Positive(t, rows, "page %d of total=%d size=%d", page, total, size)
				sum += rows
			}
			require.Equal(t, total, sum, "total=%d size=%d", total, size)

			if pages > 0 {
				last := total - (pages-1)*int64(size)
				require.Positive(t, last)
				require.LessOrEqual(t, last, int64(size))
			}
		}
	}
}

// sqlCapture records every statement gorm renders, so a dry-run List call
// exposes both the count and the row query.
type sqlCapture struct {
	stmts []string
}

func (c *sqlCapture) LogMode(logger.LogLevel) logger.Interface               { return c }
func (c *sqlCapture) Info(context.Context, string, ...interface{})           {}
func (c *sqlCapture) Warn(context.Context, string, ...interface{})           {}
func (c *sqlCapture) Error(context.Context, string, ...interface{})          {}
func (c *sqlCapture) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	c.stmts = append(c.stmts, sql)
}

func captureService(t *testing.T) (*Service, *sqlCapture) {
	t.Helper()
	capture := &sqlCapture{}
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true, Logger: capture})
	require.NoError(t, err)
	return NewService(db, testCfg), capture
}

// The count runs on the exact predicate set the rows run on; a filter that
// reached one query but not the other would make the page math lie.
func TestListCountAndRowsSharePredicates(t *testing.T) {
	svc, capture := captureService(t)

	var rows []listing
	res, err := svc.List(listingSchema, Params{
		FilterColumn: "Price (AED)",
		FilterValue:  "100",
		Search:       "marina",
		Page:         2,
		PageSize:     5,
	}, &rows)
	require.NoError(t, err)
	require.Equal(t, 2, res.Page)
	require.Equal(t, 5, res.PageSize)

	require.Len(t, capture.stmts, 2)
	countSQL, findSQL := capture.stmts[0], capture.stmts[1]

	require.Contains(t, countSQL, "count(*)")
	for _, predicate := range []string{
		"NULLIF(price_aed, '')::numeric BETWEEN",
		"developer ILIKE",
		"location ILIKE",
	} {
		require.Contains(t, countSQL, predicate)
		require.Contains(t, findSQL, predicate)
	}

	// pagination and ordering belong to the row query only
	require.Contains(t, findSQL, "ORDER BY created_at DESC")
	require.Contains(t, findSQL, "OFFSET 5")
	require.NotContains(t, countSQL, "OFFSET")
}

func TestListWrapsStorageErrors(t *testing.T) {
	svc, _ := captureService(t)

	// a dest gorm cannot model fails the count, which must surface as the
	// storage sentinel rather than a raw driver error
	var dest int
	_, err := svc.List(listingSchema, Params{}, &dest)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrStorageUnavailable)
}
