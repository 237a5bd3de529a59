package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SuccessResponse writes a flat JSON payload with HTTP 200. Domain-level
// failures travel inside the payload (success=false plus an error message),
// never as a non-2xx status.
func SuccessResponse(c echo.Context, payload interface{}) error {
	return c.JSON(http.StatusOK, payload)
}

// BadRequestResponse writes a transport-level validation failure.
func BadRequestResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusBadRequest, APIResponse{
		Status:  http.StatusBadRequest,
		Message: http.StatusText(http.StatusBadRequest),
		Data:    data,
	})
}

// InternalServerErrorResponse writes an internal server error.
func InternalServerErrorResponse(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, APIResponse{
		Status:  http.StatusInternalServerError,
		Message: http.StatusText(http.StatusInternalServerError),
	})
}
