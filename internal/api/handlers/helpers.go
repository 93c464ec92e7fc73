package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func getUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return "", fiber.ErrUnauthorized
	}
	return userID, nil
}

// queryPtr returns a pointer to the query parameter value, or nil when the
// parameter is absent or empty.
func queryPtr(c *fiber.Ctx, name string) *string {
	if v := c.Query(name); v != "" {
		return &v
	}
	return nil
}

// queryFloatPtr parses an optional float query parameter. ok is false when
// the parameter is present but not numeric.
func queryFloatPtr(c *fiber.Ctx, name string) (*float64, bool) {
	v := c.Query(name)
	if v == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, false
	}
	return &f, true
}

func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
