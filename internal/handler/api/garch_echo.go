package api

import (
	"time"

	"VolSense/internal/domain/models"
	"VolSense/internal/usecase"
	xhttp "VolSense/pkg/http"
	xlogger "VolSense/pkg/logger"
	"VolSense/pkg/util"

	"github.com/labstack/echo/v4"
)

const (
	ServiceName = "garch-analysis-service"
	Version     = "1.0.0"
)

// GarchEchoHandler exposes the volatility engine over HTTP. It owns no
// state; every request is a fresh pipeline through the analyzer.
type GarchEchoHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.VolatilityAnalyzer
}

func NewGarchEchoHandler(logger *xlogger.Logger, analyzer *usecase.VolatilityAnalyzer) *GarchEchoHandler {
	return &GarchEchoHandler{logger: logger, analyzer: analyzer}
}

func (h *GarchEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Health)
	e.GET("/health", h.Health)
	e.POST("/fit", h.Fit)
	e.POST("/anomaly", h.Anomaly)
	e.POST("/forecast", h.Forecast)
	e.GET("/compare/:series_id", h.Compare)
}

func (h *GarchEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, models.HealthResponse{
		Status:    "healthy",
		Service:   ServiceName,
		Version:   Version,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (h *GarchEchoHandler) Fit(c echo.Context) error {
	req := &models.FitRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	h.logger.Info("fit request",
		xlogger.String("series_id", req.SeriesID),
		xlogger.Int("values", len(req.Values)),
		xlogger.String("dist", req.Dist),
	)
	return xhttp.SuccessResponse(c, h.analyzer.Fit(c.Request().Context(), req))
}

func (h *GarchEchoHandler) Anomaly(c echo.Context) error {
	req := &models.AnomalyRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	h.logger.Info("anomaly request",
		xlogger.Float64("current_value", *req.CurrentValue),
		xlogger.Int("historical_values", len(req.HistoricalValues)),
	)
	return xhttp.SuccessResponse(c, h.analyzer.DetectAnomaly(c.Request().Context(), req))
}

func (h *GarchEchoHandler) Forecast(c echo.Context) error {
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.analyzer.Forecast(c.Request().Context(), req))
}

// Compare parses the comma-separated values query; the last element is the
// current value, the remainder the history.
func (h *GarchEchoHandler) Compare(c echo.Context) error {
	seriesID := c.Param("series_id")
	values, err := util.ParseFloatsCSV(c.QueryParam("values"))
	if err != nil {
		return xhttp.SuccessResponse(c, &models.CompareResponse{SeriesID: seriesID, Error: err.Error()})
	}
	return xhttp.SuccessResponse(c, h.analyzer.Compare(c.Request().Context(), seriesID, values))
}
