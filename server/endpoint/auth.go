package endpoint

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/cinevault/cinevault/errors"
	"github.com/cinevault/cinevault/logger"
	"github.com/cinevault/cinevault/store"
	"github.com/cinevault/cinevault/validation"
)

// IdentityStore is the credential-store surface the auth handlers need.
type IdentityStore interface {
	Register(ctx context.Context, email, password, name string) (*store.Identity, error)
	FindByEmail(ctx context.Context, email string) (*store.Identity, error)
	VerifyPassword(identity *store.Identity, password string) bool
}

// TokenIssuer mints a bearer token for an identity id.
type TokenIssuer interface {
	Issue(identityID string) (string, error)
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates an identity and returns a fresh token.
func Register(identities IdentityStore, tokens TokenIssuer, log *logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("auth")

	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperrors.InvalidPayload("malformed request body"))
			return
		}
		if err := validation.Validate(req); err != nil {
			respondError(c, err)
			return
		}

		identity, err := identities.Register(c.Request.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			respondError(c, err)
			return
		}

		token, err := tokens.Issue(identity.ID.Hex())
		if err != nil {
			log.Error("Token issue failed after registration", logger.Fields(
				logger.FieldError, err.Error(),
				logger.FieldUserID, identity.ID.Hex(),
			))
			respondError(c, apperrors.AuthError(err))
			return
		}

		log.Info("Identity registered", logger.Fields(logger.FieldUserID, identity.ID.Hex()))
		c.JSON(http.StatusCreated, TokenResponse{Token: token})
	}
}

// Login verifies credentials and returns a fresh token. A wrong password and
// an unknown email produce the same response so the endpoint cannot be used
// to probe which emails are registered.
func Login(identities IdentityStore, tokens TokenIssuer, log *logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("auth")

	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperrors.InvalidPayload("malformed request body"))
			return
		}
		if err := validation.Validate(req); err != nil {
			respondError(c, err)
			return
		}

		identity, err := identities.FindByEmail(c.Request.Context(), req.Email)
		if err != nil {
			if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.CodeNotFound {
				respondError(c, apperrors.InvalidCredentials())
				return
			}
			respondError(c, err)
			return
		}
		if !identities.VerifyPassword(identity, req.Password) {
			respondError(c, apperrors.InvalidCredentials())
			return
		}

		token, err := tokens.Issue(identity.ID.Hex())
		if err != nil {
			log.Error("Token issue failed after login", logger.Fields(
				logger.FieldError, err.Error(),
				logger.FieldUserID, identity.ID.Hex(),
			))
			respondError(c, apperrors.AuthError(err))
			return
		}

		c.JSON(http.StatusOK, TokenResponse{Token: token})
	}
}
