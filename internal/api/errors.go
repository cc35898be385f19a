package api

import (
	"errors"
	"net/http"

	"bazi/internal/bazi"
	"bazi/internal/engine"
	"bazi/internal/models"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// statusFor maps calculator errors onto HTTP: bad input 400, a date the
// dataset does not cover 422, dataset unavailable 503.
func statusFor(err error) int {
	var verr *bazi.ValidationError
	var cerr *bazi.CoverageError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.As(err, &cerr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrLoad):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (h *Handler) fail(c echo.Context, err error) error {
	status := statusFor(err)
	body := models.ErrorResponse{Error: err.Error()}

	var verr *bazi.ValidationError
	if errors.As(err, &verr) {
		body.Field = verr.Field
	}
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed",
			zap.String("path", c.Path()),
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			zap.Error(err))
	}
	return c.JSON(status, body)
}

func (h *Handler) notReady(c echo.Context) error {
	if err := h.data.Err(); err != nil {
		return h.fail(c, err)
	}
	c.Response().Header().Set("Retry-After", "1")
	return c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "calendar data is loading"})
}
