package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	GuestCookie    = "guest_session"
	guestCookieTTL = 30 * 24 * time.Hour
)

// Identity resolves the cart owner. A bearer token must be valid; without one
// the request runs as a guest, and a guest_session cookie is issued on first
// use.
func Identity(tokens *auth.TokenParser, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var id auth.Identity

		if header := c.GetHeader("Authorization"); header != "" {
			parts := strings.Split(header, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, response.Error(c, "Invalid authorization header format"))
				c.Abort()
				return
			}
			userID, err := tokens.UserID(parts[1])
			if err != nil {
				c.JSON(http.StatusUnauthorized, response.Error(c, "Invalid or expired token"))
				c.Abort()
				return
			}
			id.UserID = userID
		}

		if guest, err := c.Cookie(GuestCookie); err == nil && validGuestID(guest) {
			id.GuestID = guest
		} else if id.IsGuest() {
			id.GuestID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(GuestCookie, id.GuestID, int(guestCookieTTL.Seconds()), "/", "", secureCookie, true)
		}

		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

func validGuestID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
