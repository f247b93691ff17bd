package middleware

import (
	"github.com/gin-gonic/gin"
)

// PostedFields collects the named form fields present in the request body.
// Absent fields are left out so callers can tell "not sent" from "cleared".
func PostedFields(c *gin.Context, names []string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		if v, ok := c.GetPostForm(name); ok {
			out[name] = v
		}
	}
	return out
}
