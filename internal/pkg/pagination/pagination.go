package pagination

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Params represents pagination parameters forwarded to the upstream API
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// DefaultLimit is the default number of items per page
const DefaultLimit = 20

// MaxLimit is the maximum number of items per page
const MaxLimit = 100

// GetParams extracts pagination parameters from the request
func GetParams(c *fiber.Ctx) *Params {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(DefaultLimit)))

	// Validate page
	if page < 1 {
		page = 1
	}

	// Validate limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return &Params{
		Page:  page,
		Limit: limit,
	}
}

// Query renders the parameters as an upstream query string.
func (p *Params) Query() string {
	return fmt.Sprintf("?page=%d&limit=%d", p.Page, p.Limit)
}
