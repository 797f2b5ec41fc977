package middleware

import (
	"errors"
	"net/http"

	"github.com/findyourpeers/peers/internal/app/models/dto"
	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/findyourpeers/peers/internal/pkg/auth"
	"github.com/gin-gonic/gin"
)

// Context keys set by JWTAuth.
const (
	ContextUserID    = "userID"
	ContextPrincipal = "principal"
)

// Authenticator turns an access token into the caller it identifies.
type Authenticator interface {
	Authenticate(token string) (*auth.Principal, error)
}

// AuthMiddleware for authentication
type AuthMiddleware struct {
	authenticator Authenticator
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authenticator Authenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// JWTAuth middleware for JWT token validation. The token is read from the
// Authorization header only.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.authenticate(c, c.GetHeader("Authorization"))
	}
}

// WebSocketAuth is JWTAuth for WebSocket upgrade routes. Browsers cannot set
// headers on a WebSocket handshake, so the "token" query parameter is
// accepted when the Authorization header is absent.
func (m *AuthMiddleware) WebSocketAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			authHeader = c.Query("token")
		}
		m.authenticate(c, authHeader)
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context, authHeader string) {
	if authHeader == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
			WithDetails("Authorization header missing")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	tokenString, err := auth.ExtractBearerToken(authHeader)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
			WithDetails("Invalid token format")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	principal, err := m.authenticator.Authenticate(tokenString)
	if err != nil {
		errorCode := dto.ErrorCodeInvalidToken
		errorDetails := "Invalid token"
		if errors.Is(err, apperrors.ErrTokenExpired) {
			errorCode = dto.ErrorCodeExpiredToken
			errorDetails = "Token has expired"
		}

		errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed").WithDetails(errorDetails)
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	c.Set(ContextUserID, principal.UserID)
	c.Set(ContextPrincipal, *principal)
	c.Next()
}

// CurrentUser returns the caller authenticated by JWTAuth.
func CurrentUser(c *gin.Context) (auth.Principal, bool) {
	raw, exists := c.Get(ContextPrincipal)
	if !exists {
		return auth.Principal{}, false
	}
	p, ok := raw.(auth.Principal)
	return p, ok
}
