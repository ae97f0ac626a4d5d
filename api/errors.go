package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"sixgo.GO/client"
)

// RenderError maps an upstream or local error onto the console response.
// Upstream failures keep their status and normalized message; anything else
// is a 500 with the error text.
func RenderError(c echo.Context, err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		body := echo.Map{"error": apiErr.Message}
		if apiErr.Code != "" {
			body["code"] = apiErr.Code
		}
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}
