package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/unlinked-app/backend/internal/models"
)

// currentUser returns the account loaded by the auth middleware. Nil only on
// unprotected routes, which never call this.
func currentUser(c echo.Context) *models.User {
	user, _ := c.Get("user").(*models.User)
	return user
}
