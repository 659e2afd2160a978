package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/it-helpdesk/internal/constants"
)

// Page describes one page of a listing after clamping the requested number
// into the valid range.
type Page struct {
	Number   int
	Size     int
	Total    int64
	NumPages int
}

// NewPage clamps requested into [1, last page]. An empty listing still has
// a single (empty) page.
func NewPage(requested, size int, total int64) Page {
	if size < 1 {
		size = 1
	}

	numPages := int((total + int64(size) - 1) / int64(size))
	if numPages < 1 {
		numPages = 1
	}

	number := requested
	if number < constants.MinPage {
		number = constants.MinPage
	}
	if number > numPages {
		number = numPages
	}

	return Page{
		Number:   number,
		Size:     size,
		Total:    total,
		NumPages: numPages,
	}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Page) HasPrevious() bool {
	return p.Number > 1
}

func (p Page) HasNext() bool {
	return p.Number < p.NumPages
}

func (p Page) HasOtherPages() bool {
	return p.NumPages > 1
}

func (p Page) PreviousNumber() int {
	return p.Number - 1
}

func (p Page) NextNumber() int {
	return p.Number + 1
}

// StartIndex is the 1-based index of the first item on the page, 0 when empty.
func (p Page) StartIndex() int64 {
	if p.Total == 0 {
		return 0
	}
	return int64(p.Offset()) + 1
}

func (p Page) EndIndex() int64 {
	end := int64(p.Offset() + p.Size)
	if end > p.Total {
		return p.Total
	}
	return end
}

// GetPageNumber reads ?page=; anything non-numeric yields the first page.
func GetPageNumber(c *gin.Context) int {
	return QueryInt(c, "page", constants.MinPage)
}

func QueryInt(c *gin.Context, key string, defaultValue int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) {
		// out-of-range digits still clamp to the nearest end
		if strings.HasPrefix(raw, "-") {
			return math.MinInt
		}
		return math.MaxInt
	}
	if err != nil {
		return defaultValue
	}
	return n
}

// LikeEscape is the escape character LikePattern uses; queries must pair the
// pattern with ESCAPE '!'.
const LikeEscape = "!"

// LikePattern lowercases term and wraps it for a substring LIKE match with
// wildcards in the term escaped.
func LikePattern(term string) string {
	replacer := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + replacer.Replace(strings.ToLower(term)) + "%"
}
