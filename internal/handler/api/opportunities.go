package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	models "DugoutEdge/internal/domain/models"
	icache "DugoutEdge/internal/service/cache"
	"DugoutEdge/internal/service/metrics"
	"DugoutEdge/internal/service/ratelimit"
	"DugoutEdge/internal/usecase"
	xhttp "DugoutEdge/pkg/http"
	xlogger "DugoutEdge/pkg/logger"

	"github.com/labstack/echo/v4"
)

// OpportunitiesHandler serves the scored candidate board.
type OpportunitiesHandler struct {
	logger *xlogger.Logger
	agg    *usecase.OpportunityAggregator
	cache  icache.BytesCache
	rl     *ratelimit.Limiter
}

func NewOpportunitiesHandler(logger *xlogger.Logger, agg *usecase.OpportunityAggregator) *OpportunitiesHandler {
	metrics.Register()
	return &OpportunitiesHandler{logger: logger, agg: agg, rl: ratelimit.New()}
}

// SetCache injects a response bytes cache.
func (h *OpportunitiesHandler) SetCache(c icache.BytesCache) { h.cache = c }

func (h *OpportunitiesHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	g := e.Group("/api")
	g.GET("/opportunities", h.Opportunities)
	g.GET("/opportunities/classify", h.Classify)
}

func (h *OpportunitiesHandler) Opportunities(c echo.Context) error {
	req := &models.OpportunitiesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if !h.rl.Allow(c.RealIP()+":opportunities", 10, 4) {
		if h.logger != nil {
			h.logger.Warn("opportunities rate_limited", xlogger.String("remote", c.RealIP()))
		}
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limited")
	}

	key := fmt.Sprintf("opps:%s:%s:%g:%d", req.Date, req.Team, req.MinScore, req.Limit)
	if !req.Refresh {
		if b, ok := h.cached(key); ok {
			return c.JSONBlob(http.StatusOK, b)
		}
	}

	res, err := h.agg.Opportunities(c.Request().Context(), req)
	if err != nil {
		metrics.Errors.WithLabelValues("handler").Inc()
		if h.logger != nil {
			h.logger.Error("opportunities usecase error", xlogger.Error(err))
		}
		return xhttp.AppErrorResponse(c, err)
	}

	h.store(key, res, 30*time.Second)
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=30")
	return xhttp.SuccessResponse(c, res)
}

func (h *OpportunitiesHandler) Classify(c echo.Context) error {
	req := &models.ClassifyRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if !h.rl.Allow(c.RealIP()+":classify", 5, 2) {
		if h.logger != nil {
			h.logger.Warn("classify rate_limited", xlogger.String("remote", c.RealIP()))
		}
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limited")
	}

	key := "classify:" + req.Date + ":" + req.Mode
	if b, ok := h.cached(key); ok {
		return c.JSONBlob(http.StatusOK, b)
	}

	res, err := h.agg.Classify(c.Request().Context(), req)
	if err != nil {
		metrics.Errors.WithLabelValues("handler").Inc()
		if h.logger != nil {
			h.logger.Error("classify usecase error", xlogger.Error(err))
		}
		return xhttp.AppErrorResponse(c, err)
	}

	h.store(key, res, 30*time.Second)
	return xhttp.SuccessResponse(c, res)
}

// cached returns a previously stored response envelope.
func (h *OpportunitiesHandler) cached(key string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}
	b, ok, err := h.cache.GetBytes(key)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("response cache get failed", xlogger.Error(err))
		}
		return nil, false
	}
	if ok && h.logger != nil {
		h.logger.Debug("response cache hit", xlogger.String("key", key))
	}
	return b, ok
}

// store caches the full response envelope so hits replay byte-identical
// bodies.
func (h *OpportunitiesHandler) store(key string, data interface{}, ttl time.Duration) {
	if h.cache == nil {
		return
	}
	envelope := xhttp.APIResponse{
		Status:  http.StatusOK,
		Message: http.StatusText(http.StatusOK),
		Data:    data,
	}
	b, err := json.Marshal(envelope)
	if err != nil {
		return
	}
	if err := h.cache.SetBytes(key, b, ttl); err != nil && h.logger != nil {
		h.logger.Warn("response cache set failed", xlogger.Error(err))
	}
}
