package handler

import (
	"strconv"

	"socialnet/backend/internal/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Page defines the structure for a paginated list of any type.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// pageParams reads the page and page_size query parameters, falling back to
// the configured defaults and capping page_size at the configured maximum.
func pageParams(c *gin.Context) (page, pageSize int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(config.AppConfig.PageSize)))
	if err != nil || pageSize < 1 {
		pageSize = config.AppConfig.PageSize
	}
	if pageSize > config.AppConfig.MaxPageSize {
		pageSize = config.AppConfig.MaxPageSize
	}

	return page, pageSize
}

// pageLink rebuilds the request URL with the given page number.
func pageLink(c *gin.Context, page int) *string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	link := u.String()
	return &link
}

// Paginate executes a paginated query and wraps the results with count and
// next/previous links.
func Paginate[T any](c *gin.Context, query *gorm.DB) (*Page[T], error) {
	page, pageSize := pageParams(c)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, err
	}

	var results []T
	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Find(&results).Error; err != nil {
		return nil, err
	}
	if results == nil {
		results = []T{}
	}

	resp := &Page[T]{
		Count:   count,
		Results: results,
	}
	if int64(page*pageSize) < count {
		resp.Next = pageLink(c, page+1)
	}
	if page > 1 {
		resp.Previous = pageLink(c, page-1)
	}

	return resp, nil
}

// NewPage rewraps already-projected results with the pagination metadata of
// an existing page.
func NewPage[T, U any](src *Page[U], results []T) *Page[T] {
	if results == nil {
		results = []T{}
	}
	return &Page[T]{
		Count:    src.Count,
		Next:     src.Next,
		Previous: src.Previous,
		Results:  results,
	}
}
