package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

// SetJWTSecret configures the HMAC secret used to validate tokens.
// Must be called once at startup before any request is served.
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

// JWTAuth validates the Bearer token on the request and places the
// authenticated user's ID and role into the Gin context.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondUnauthorized(c, "Missing Authorization header. A valid Bearer token is required.")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			respondUnauthorized(c, "Authorization header must use Bearer scheme. Format: 'Bearer <token>'")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			respondUnauthorized(c, "Bearer token is empty")
			return
		}

		claims, err := parseAndValidateJWT(tokenString)
		if err != nil {
			respondUnauthorized(c, err.Error())
			return
		}

		if err := extractAndSetClaims(c, claims); err != nil {
			respondUnauthorized(c, err.Error())
			return
		}

		c.Next()
	}
}

func respondUnauthorized(c *gin.Context, detail string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"message": "Authentication required",
		"detail":  detail,
	})
	c.Abort()
}

// parseAndValidateJWT parses the token and performs strict time-claim
// validation.
func parseAndValidateJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method to prevent algorithm confusion attacks
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v. Expected HMAC", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token parsing failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims format")
	}

	now := time.Now()

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("invalid exp claim: %w", err)
	}
	if exp != nil && exp.Before(now) {
		return nil, fmt.Errorf("token has expired")
	}

	iat, err := claims.GetIssuedAt()
	if err != nil {
		return nil, fmt.Errorf("invalid iat claim: %w", err)
	}
	if iat != nil && iat.After(now) {
		return nil, fmt.Errorf("token issued in the future")
	}

	return claims, nil
}

// extractAndSetClaims pulls the user ID and role out of the claims this
// API issues at login and stores them in the request context.
func extractAndSetClaims(c *gin.Context, claims jwt.MapClaims) error {
	// JSON numbers arrive as float64
	uid, ok := claims["user"].(float64)
	if !ok || uid <= 0 {
		return fmt.Errorf("token missing required 'user' claim")
	}
	c.Set("userID", uint(uid))

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return fmt.Errorf("token missing required 'role' claim")
	}
	if role != "admin" && role != "customer" {
		return fmt.Errorf("invalid role %q. Allowed roles: admin, customer", role)
	}
	c.Set("userRole", role)

	return nil
}
