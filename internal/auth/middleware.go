package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"complaint-service/internal/model"
)

const claimKey = "identity_claim"

// Middleware verifies the bearer token and injects an IdentityClaim into the
// request context. Suspended and inactive accounts are rejected here so the
// services only ever see active callers.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
			return
		}

		claim, err := ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if !claim.Active() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account is not active"})
			return
		}

		c.Set(claimKey, claim)
		c.Next()
	}
}

// ClaimFrom returns the IdentityClaim set by Middleware.
func ClaimFrom(c *gin.Context) IdentityClaim {
	v, _ := c.Get(claimKey)
	claim, _ := v.(IdentityClaim)
	return claim
}

// ParseToken validates an HS256 token and extracts the identity claim.
func ParseToken(tokenString, secret string) (IdentityClaim, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return IdentityClaim{}, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return IdentityClaim{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return IdentityClaim{}, errors.New("invalid claims")
	}

	userIDStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return IdentityClaim{}, errors.New("invalid user_id claim")
	}
	role, _ := claims["role"].(string)
	status, _ := claims["status"].(string)

	return IdentityClaim{
		UserID: userID,
		Role:   model.Role(role),
		Status: model.UserStatus(status),
	}, nil
}
