package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/careerfair/jobfair-api/internal/api/handler/v1/response"
	"github.com/careerfair/jobfair-api/internal/domain"
	"github.com/careerfair/jobfair-api/internal/pkg/jwthelper"
	"github.com/careerfair/jobfair-api/internal/service"
)

const (
	ContextKeyUserID = "userID"
	ContextKeyUser   = "user"
)

var (
	errMissingToken      = errors.New("missing bearer token")
	errUserAgentMismatch = errors.New("token was issued to another user agent")
	errNotAdmin          = errors.New("admin role required")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT stores the ID of the token's user under ContextKeyUserID.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, tokenString)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		if claims.UserAgent != ctx.Request.UserAgent() {
			response.RenderErr(ctx, response.ErrUnauthorized(errUserAgentMismatch))
			return
		}

		ctx.Set(ContextKeyUserID, claims.UserID)
		ctx.Next()
	}
}

type UserGetter interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

// RequireAdmin must run after VerifyJWT. It stores the admin under ContextKeyUser.
func RequireAdmin(users UserGetter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID := ctx.GetUint(ContextKeyUserID)
		if userID == 0 {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		user, err := users.GetUser(ctx.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				response.RenderErr(ctx, response.ErrUnauthorized(err))
				return
			}

			err = fmt.Errorf("middleware.RequireAdmin -> users.GetUser -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}

		if !user.IsAdmin() {
			response.RenderErr(ctx, response.ErrPermissionDenied(errNotAdmin))
			return
		}

		ctx.Set(ContextKeyUser, user)
		ctx.Next()
	}
}
