package utils

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestGetPageNumber(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{query: "", want: 1},
		{query: "page=3", want: 3},
		{query: "page=abc", want: 1},
		{query: "page=-4", want: -4},
		{query: "page=99999999999999999999", want: math.MaxInt},
		{query: "page=-99999999999999999999", want: math.MinInt},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, GetPageNumber(queryContext(tt.query)))
		})
	}
}

func TestNewPage_Clamps(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		total     int64
		want      int
		numPages  int
	}{
		{name: "in range", requested: 2, total: 31, want: 2, numPages: 3},
		{name: "below first", requested: 0, total: 31, want: 1, numPages: 3},
		{name: "past last", requested: 99, total: 31, want: 3, numPages: 3},
		{name: "overflowed request", requested: math.MaxInt, total: 31, want: 3, numPages: 3},
		{name: "empty listing", requested: 5, total: 0, want: 1, numPages: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPage(tt.requested, 15, tt.total)
			assert.Equal(t, tt.want, page.Number)
			assert.Equal(t, tt.numPages, page.NumPages)
			assert.Equal(t, (tt.want-1)*15, page.Offset())
		})
	}
}
