package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Hello returns a simple welcome message
func Hello(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Welcome to Hackabull API",
	})
}

// HealthCheck reports service liveness
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status": "healthy",
	})
}
