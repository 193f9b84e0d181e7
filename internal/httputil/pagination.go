package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageBounds is the default and maximum page size of a listing endpoint.
type PageBounds struct {
	DefaultLimit int
	MaxLimit     int
}

var (
	// ListPage bounds lead and campaign listings.
	ListPage = PageBounds{DefaultLimit: 50, MaxLimit: 100}
	// LogPage bounds a lead's event log, which is read in larger pages to rebuild status history.
	LogPage = PageBounds{DefaultLimit: 50, MaxLimit: 1000}
)

// Page is a parsed offset/limit pair.
type Page struct {
	Offset int
	Limit  int
}

// ParsePage reads the offset and limit query parameters within bounds.
func ParsePage(c *gin.Context, bounds PageBounds) (Page, error) {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return Page{}, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(bounds.DefaultLimit)))
	if err != nil || limit < 1 || limit > bounds.MaxLimit {
		return Page{}, fmt.Errorf("invalid limit parameter: must be between 1 and %d", bounds.MaxLimit)
	}

	return Page{Offset: offset, Limit: limit}, nil
}
