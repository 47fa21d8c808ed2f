package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/campus_complaints/internal/domain"
	"github.com/Skotchmaster/campus_complaints/internal/transport"
)

// ErrorHandler renders every failure as {"success": false, "message": ...}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := domain.HTTPStatus(err)
	msg := domain.PublicMessage(err)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = c.JSON(code, transport.MessageResponse{Success: false, Message: msg})
	}
	if werr != nil {
		slog.Default().Error("error response write failed", "error", werr)
	}
}

// fail logs err under event and converts it to the HTTP error for its class.
func fail(l *slog.Logger, event string, err error) error {
	code := domain.HTTPStatus(err)
	switch {
	case code >= 500:
		l.Error(event, "status", code, "error", err)
	default:
		l.Warn(event, "status", code, "reason", err.Error())
	}
	return echo.NewHTTPError(code, domain.PublicMessage(err)).SetInternal(err)
}
