package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TanzilStore/store_api/internal/query"
	"github.com/TanzilStore/store_api/internal/utils"
)

// listParams are the pagination and ordering parameters every list
// endpoint accepts: page, limit, search, sortBy, sortDir.
type listParams struct {
	Search  string
	SortBy  string
	SortDir query.Direction
	Page    int
	Limit   int
}

func parseListParams(c *gin.Context) listParams {
	p := listParams{
		Search:  c.Query("search"),
		SortBy:  c.Query("sortBy"),
		SortDir: query.Asc,
		Page:    1,
		Limit:   query.DefaultLimit,
	}
	if c.Query("sortDir") == string(query.Desc) {
		p.SortDir = query.Desc
	}
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Page = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Limit = n
		}
	}
	return p
}

// parseBoolQuery reads an optional boolean query parameter. A missing or
// unparseable value yields nil, meaning the filter is not applied.
func parseBoolQuery(c *gin.Context, name string) *bool {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

func toMeta(p query.Pagination) utils.Pagination {
	return utils.Pagination{
		Page:       p.Page,
		Limit:      p.Limit,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}
