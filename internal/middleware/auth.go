package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/unlinked-app/backend/internal/models"
	"github.com/unlinked-app/backend/internal/repositories"
)

// TokenCookieName is the session cookie carrying the signed token
const TokenCookieName = "token"

// JWTAuthMiddleware checks the session cookie, verifies the token and loads
// the account into the request context under "user".
func JWTAuthMiddleware(jwtSecret string, userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(TokenCookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized - No token provided!")
			}

			claims := &models.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token!")
			}

			user, err := userRepo.GetUserByID(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not found!")
			}

			c.Set("user", user)
			return next(c)
		}
	}
}
