package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/DarkZone24/inventory-monitoring-system/internal/apierror"
	"github.com/DarkZone24/inventory-monitoring-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const (
	ClaimsKey = "claims"
)

// JWTClaims are the custom claims embedded in every access token.
type JWTClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// CapabilityResolver answers whether a role currently holds a capability.
type CapabilityResolver func(ctx context.Context, role string, capability model.Capability) (bool, error)

// JWTAuth validates the Bearer token on every protected route.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Authentication required"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole rejects requests whose JWT role is not in the allowed list.
func RequireRole(roles ...model.RoleName) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[string(r)] = true
	}
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !allowed[claims.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Insufficient permissions"))
			return
		}
		c.Next()
	}
}

// RequireCapability looks up the caller's role flags once per request, so a
// permission change applies without reissuing tokens.
func RequireCapability(resolve CapabilityResolver, capability model.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Authentication required"))
			return
		}
		ok, err := resolve(c.Request.Context(), claims.Role, capability)
		if err != nil {
			log.Error().Err(err).
				Str("request_id", c.GetString(RequestIDKey)).
				Str("role", claims.Role).
				Msg("capability lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.Internal(c.GetString(RequestIDKey)))
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Access denied: missing "+string(capability)+" permission"))
			return
		}
		c.Next()
	}
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
// It returns nil on routes that did not pass through JWTAuth.
func GetClaims(c *gin.Context) *JWTClaims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*JWTClaims)
	return claims
}
