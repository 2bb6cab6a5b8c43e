package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quizhive-backend/internal/apperr"
	"quizhive-backend/internal/config"
	logger "quizhive-backend/pkg/logging"
)

// respond writes the uniform response envelope.
func respond(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{
		"success": status < http.StatusBadRequest,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// respondError renders a domain error; unexpected errors are logged and, in
// production mode, replaced with a generic message.
func respondError(c *gin.Context, err error) {
	appErr := apperr.From(err)
	message := appErr.Message
	if appErr.Status >= http.StatusInternalServerError {
		logger.Error("request %s %s failed: %s", c.Request.Method, c.Request.URL.Path, appErr.Message)
		if cfg := config.GetConfig(); cfg != nil && cfg.IsProduction() {
			message = "internal server error"
		}
	}
	c.JSON(appErr.Status, gin.H{
		"success": false,
		"message": message,
		"error":   appErr.Code,
	})
}

// respondPage wraps a paginated listing in the envelope.
func respondPage(c *gin.Context, message string, items interface{}, page, limit int, total int64) {
	pages := int64(0)
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	respond(c, http.StatusOK, message, gin.H{
		"items": items,
		"page":  page,
		"limit": limit,
		"total": total,
		"pages": pages,
	})
}

// pagination parses page/limit query parameters with configured defaults and
// an upper bound on limit.
func pagination(c *gin.Context) (page, limit, offset int) {
	defaultSize, maxSize := 10, 100
	if cfg := config.GetConfig(); cfg != nil {
		if cfg.Pagination.PageSize > 0 {
			defaultSize = cfg.Pagination.PageSize
		}
		if cfg.Pagination.MaxPageSize > 0 {
			maxSize = cfg.Pagination.MaxPageSize
		}
	}

	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultSize)))
	if limit < 1 {
		limit = defaultSize
	}
	if limit > maxSize {
		limit = maxSize
	}
	return page, limit, (page - 1) * limit
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, apperr.Validation("INVALID_ID", "invalid "+name))
		return 0, false
	}
	return uint(id), true
}
