package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	authservice "github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/auth"
)

const KeyCurrentUser = "current_user"

func LoginRequired(authorizer *authservice.Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			parts := strings.Split(header, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return JsonError(c, http.StatusUnprocessableEntity, "Invalid Authorization header")
			}
			tokenData, err := authorizer.ValidateAccessToken(parts[1])
			if err != nil {
				return JsonError(c, http.StatusUnauthorized, err.Error())
			}
			c.Set(KeyCurrentUser, tokenData)
			if err := next(c); err != nil {
				c.Error(err)
			}
			return nil
		}
	}
}
