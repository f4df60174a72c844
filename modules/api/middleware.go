package api

import (
	"time"

	"github.com/Parasuram76/Task-Management-System/domain/admin"
	"github.com/Parasuram76/Task-Management-System/domain/apperr"
	"github.com/Parasuram76/Task-Management-System/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// AdminContextKey is the key used to store admin claims in the Fiber context.
	AdminContextKey = "admin"

	// SessionCookieName is the cookie carrying the session token.
	SessionCookieName = "authToken"
)

// CookieConfig controls the session cookie attributes.
type CookieConfig struct {
	TTL    time.Duration
	Secure bool
}

func (cc CookieConfig) session(token string, expiresAt time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cc.TTL.Seconds()),
		Expires:  expiresAt,
		Secure:   cc.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}

// cleared expires the session cookie with the same attributes it was set with.
func (cc CookieConfig) cleared() *fiber.Cookie {
	return &fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		Secure:   cc.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}

// AuthMiddleware creates a middleware that validates the session cookie.
func AuthMiddleware(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookieName)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   string(apperr.KindUnauthorized),
				Message: "Not authenticated",
			})
		}

		claims, err := authPort.ValidateToken(c.UserContext(), token)
		if err != nil {
			// Invalid and expired tokens are unauthorized; a bus failure stays internal.
			kind := apperr.KindOf(err)
			return c.Status(apperr.HTTPStatus(kind)).JSON(ErrorResponse{
				Error:   string(kind),
				Message: apperr.MessageOf(err),
			})
		}

		c.Locals(AdminContextKey, claims)
		return c.Next()
	}
}

// claimsFrom returns the identity attached by AuthMiddleware.
func claimsFrom(c *fiber.Ctx) (*admin.Claims, bool) {
	claims, ok := c.Locals(AdminContextKey).(*admin.Claims)
	return claims, ok && claims.AdminID != ""
}
