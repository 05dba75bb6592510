package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// userID renders the authenticated user's identity for rate-limit and
// cache keys.  Anonymous requests share the "guest" bucket.
func userID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case nil:
		return "guest"
	case string:
		if v == "" {
			return "guest"
		}
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
