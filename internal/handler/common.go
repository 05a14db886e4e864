package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// validate checks bound request bodies against their struct tags before
// any handler logic runs.
var validate = validator.New()

// fail writes the uniform error envelope every endpoint uses.
func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "error": msg})
}
