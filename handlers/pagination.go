package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parsePagination reads page/per_page with the API-wide bounds:
// page >= 1, per_page between 1 and 100, default 20.
func parsePagination(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}
