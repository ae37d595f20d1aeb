package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextActor    = "actor"
)

// AuthMiddleware requires a valid HS256 bearer token carrying sub and role.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, code := parseBearer(c.GetHeader("Authorization"), secret)
		if code != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": code})
			return
		}

		setActor(c, actor)
		c.Next()
	}
}

// OptionalAuthMiddleware sets the actor when a valid token is present and
// lets anonymous requests through.
func OptionalAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			if actor, code := parseBearer(header, secret); code == "" {
				setActor(c, actor)
			}
		}
		c.Next()
	}
}

func setActor(c *gin.Context, actor booking.Actor) {
	c.Set(ContextUserID, actor.ID)
	c.Set(ContextUserRole, string(actor.Role))
	c.Set(ContextActor, actor)
}

// ActorFrom returns the authenticated actor, if any.
func ActorFrom(c *gin.Context) (booking.Actor, bool) {
	v, ok := c.Get(ContextActor)
	if !ok {
		return booking.Actor{}, false
	}
	actor, ok := v.(booking.Actor)
	return actor, ok
}

func parseBearer(authHeader, secret string) (booking.Actor, string) {
	if authHeader == "" {
		return booking.Actor{}, "missing_authorization_header"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return booking.Actor{}, "invalid_authorization_header"
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return booking.Actor{}, "invalid_token"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return booking.Actor{}, "invalid_token_claims"
	}

	userID, ok := subject(claims["sub"])
	role, _ := claims["role"].(string)
	if !ok || !booking.Role(role).Valid() || booking.Role(role) == booking.RoleSystem {
		return booking.Actor{}, "invalid_token_payload"
	}

	return booking.Actor{ID: userID, Role: booking.Role(role)}, ""
}

// subject accepts sub as a JSON number or a numeric string.
func subject(v any) (uint, bool) {
	switch s := v.(type) {
	case float64:
		if s <= 0 {
			return 0, false
		}
		return uint(s), true
	case string:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil || n == 0 {
			return 0, false
		}
		return uint(n), true
	}
	return 0, false
}
