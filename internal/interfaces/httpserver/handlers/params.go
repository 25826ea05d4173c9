package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// pathID parses a numeric path parameter. On failure it writes a 400
// response and returns false.
func pathID(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(value), true
}

// pathInt parses a numeric path parameter, returning -1 on garbage.
func pathInt(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return -1
	}
	return value
}

// queryInt parses an optional integer query parameter, falling back to the
// default on absence or garbage.
func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
