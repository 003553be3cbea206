package controller

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beanvanilla/storefront-backend/pkg/catalog"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// queryValues reads a multi-valued parameter given either repeated
// (?material=a&material=b) or comma separated (?material=a,b).
func queryValues(c *gin.Context, name string) []string {
	var out []string
	for _, raw := range c.QueryArray(name) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" && !strings.EqualFold(v, "all") {
				out = append(out, v)
			}
		}
	}
	return out
}

func parsePriceBound(c *gin.Context, name string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil, fmt.Errorf("%s must be a non-negative number", name)
	}
	return &d, nil
}

// parseCatalogQuery builds a catalog query from the request. Explicit
// minPrice/maxPrice take precedence over a budget code.
func parseCatalogQuery(c *gin.Context) (catalog.Query, error) {
	var q catalog.Query

	for _, f := range catalog.Facets {
		q.Select(f, queryValues(c, string(f))...)
	}

	q.Price = catalog.BudgetRange(c.Query("budget"))
	min, err := parsePriceBound(c, "minPrice")
	if err != nil {
		return q, &queryError{code: "price", err: err}
	}
	max, err := parsePriceBound(c, "maxPrice")
	if err != nil {
		return q, &queryError{code: "price", err: err}
	}
	if min != nil || max != nil {
		if min != nil && max != nil && min.GreaterThan(*max) {
			return q, &queryError{code: "price", err: fmt.Errorf("minPrice must not exceed maxPrice")}
		}
		q.Price = catalog.PriceRange{Min: min, Max: max}
	}

	q.Search = strings.TrimSpace(c.Query("search"))

	sort, err := catalog.ParseSort(c.Query("sort"))
	if err != nil {
		return q, &queryError{code: "sort", err: err}
	}
	q.Sort = sort

	return q, nil
}

type queryError struct {
	code string
	err  error
}

func (e *queryError) Error() string {
	return e.err.Error()
}

func parseVisible(c *gin.Context) (int, error) {
	raw := c.Query("visible")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("visible must be a non-negative integer")
	}
	return n, nil
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
