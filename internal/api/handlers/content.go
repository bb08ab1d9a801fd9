package handlers

import (
	"errors"
	"net/http"

	"github.com/aved-sa/aved-web/internal/api/dto/common"
	"github.com/aved-sa/aved-web/internal/api/middleware"
	"github.com/aved-sa/aved-web/internal/backend"
	"github.com/aved-sa/aved-web/internal/content"
	"github.com/aved-sa/aved-web/internal/utils"

	"github.com/gin-gonic/gin"
)

var notFoundResponse = common.NewErrorResponse(common.ErrCodeNotFound, "Resource not found", nil)

// ContentHandler serves localized static content as JSON
type ContentHandler struct {
	content ContentSource
}

func NewContentHandler(source ContentSource) *ContentHandler {
	return &ContentHandler{content: source}
}

// Get returns the static document named by :type in the request locale
func (h *ContentHandler) Get(c *gin.Context) {
	t, err := content.ParseType(c.Param("type"))
	if err != nil {
		utils.HandleAPIError(c, nil, http.StatusNotFound, common.ErrCodeNotFound, "Unknown content type")
		return
	}

	page, err := h.content.Page(c.Request.Context(), t, middleware.GetLocale(c))
	switch {
	case errors.Is(err, backend.ErrNotFound):
		utils.HandleAPIError(c, nil, http.StatusNotFound, common.ErrCodeNotFound, "Content not found")
	case err != nil:
		utils.HandleAPIError(c, err, http.StatusBadGateway, common.ErrCodeBadGateway, "Content unavailable")
	default:
		utils.HandleSuccess(c, page)
	}
}
