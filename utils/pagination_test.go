package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationFor(t *testing.T, query string) *Pagination {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return NewPagination(c)
}

func TestNewPaginationDefaults(t *testing.T) {
	p := paginationFor(t, "")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPaginationLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestNewPaginationParsesParams(t *testing.T) {
	p := paginationFor(t, "page=3&page_size=20")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 40, p.Offset)
}

func TestNewPaginationCapsPageSize(t *testing.T) {
	p := paginationFor(t, "page_size=500")
	assert.Equal(t, MaxPaginationLimit, p.Limit)
}

func TestNewPaginationRejectsBadInput(t *testing.T) {
	p := paginationFor(t, "page=-1&page_size=abc")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPaginationLimit, p.Limit)
}

func TestPaginationSetTotal(t *testing.T) {
	p := &Pagination{Page: 1, Limit: 10}
	p.SetTotal(25)
	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, 3, p.LastPage)
}
