package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/aved-sa/aved-web/internal/api/dto/common"
	"github.com/aved-sa/aved-web/internal/version"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is reachable. cache.Store implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	cache Pinger
}

func NewHealthHandler(cache Pinger) *HealthHandler {
	return &HealthHandler{cache: cache}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	build := version.GetBuildInfo()
	info := version.ServerInfo{
		Status:    "ok",
		Version:   build.Version,
		BuildTime: build.BuildTime,
		GitCommit: build.GitCommit,
		Cache:     "ok",
	}

	// Test cache connection
	if err := h.cache.Ping(ctx); err != nil {
		info.Status = "degraded"
		info.Cache = err.Error()
		c.JSON(http.StatusServiceUnavailable, common.APIResponse{
			Success: false,
			Data:    info,
			Error: &common.ErrorResponse{
				Code:    string(common.ErrCodeUnavailable),
				Message: "Cache connection error",
			},
		})
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(info))
}
