package api

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/intradaypulse/internal/domain/dto"
	"github.com/guttosm/intradaypulse/internal/logger"
	"github.com/guttosm/intradaypulse/internal/middleware"
	"github.com/guttosm/intradaypulse/internal/service"
)

const (
	// DataTierHeader reports which upstream tier served the data.
	DataTierHeader = "X-Data-Tier"

	genericFailureMessage = "An error occurred while processing your request"
)

// symbolPattern accepts equity, index and FX style tickers after upper-casing
// (e.g. IBM, BRK.B, ^GSPC, TSX:SHOP, EURUSD=X).
var symbolPattern = regexp.MustCompile(`^[A-Z0-9.\-:^=]{1,32}$`)

// Handler provides HTTP handlers for the intraday endpoints.
//
// Responsibilities:
//   - Validate and normalize the symbol
//   - Delegate to the intraday service
//   - Map service errors to status codes without leaking upstream text
type Handler struct {
	svc service.IntradayService
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.IntradayService): fetches and aggregates intraday data.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.IntradayService) *Handler {
	return &Handler{svc: svc}
}

// GetIntraday handles GET /api/v1/intraday/{symbol} and GET /api/v1/intraday?symbol=.
//
// Responses:
//   - 200 OK: JSON array of daily aggregates, ascending by day (may be empty).
//   - 400 Bad Request: missing/invalid symbol, or API key not configured.
//   - 500 Internal Server Error: upstream or transport failure (generic message).
//
// GetIntraday godoc
// @Summary      Daily aggregates of last month's intraday data
// @Description  Fetches 15-minute bars for the symbol (premium tier first, free tier on denial) and returns one aggregate per day
// @Tags         intraday
// @Produce      json
// @Param        symbol  path      string  true  "Ticker symbol" example(IBM)
// @Success      200     {array}   dto.DayAggregateResponse  "Success"
// @Header       200     {string}  X-Data-Tier               "premium or free"
// @Failure      400     {object}  dto.ErrorResponse         "Bad Request"
// @Failure      429     {object}  dto.ErrorResponse         "Too Many Requests"
// @Failure      500     {object}  dto.ErrorResponse         "Internal Error"
// @Router       /api/v1/intraday/{symbol} [get]
func (h *Handler) GetIntraday(c *gin.Context) {
	// ─── Validate symbol ──────────────────────────────────────
	raw := c.Param("symbol")
	if raw == "" {
		raw = c.Query("symbol")
	}
	symbol := strings.ToUpper(strings.TrimSpace(raw))
	if symbol == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "symbol is required", nil)
		return
	}
	if !symbolPattern.MatchString(symbol) {
		middleware.AbortWithError(c, http.StatusBadRequest, "symbol contains invalid characters", nil)
		return
	}

	// ─── Fetch and aggregate (with request context) ───────────
	ctx := c.Request.Context()
	result, err := h.svc.GetDailyAggregates(ctx, symbol)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Str("symbol", symbol).Msg("intraday request failed")
		if errors.Is(err, service.ErrConfiguration) {
			middleware.AbortWithError(c, http.StatusBadRequest, err.Error(), err)
			return
		}
		middleware.AbortWithError(c, http.StatusInternalServerError, genericFailureMessage, err)
		return
	}

	// ─── Build and return response DTOs ───────────────────────
	c.Header(DataTierHeader, string(result.Tier))
	c.JSON(http.StatusOK, dto.NewDayAggregateResponses(result.Days))
}
