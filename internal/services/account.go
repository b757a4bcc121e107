package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/staynest/staynest-backend/internal/httperr"
	"github.com/staynest/staynest-backend/internal/models"
	"github.com/staynest/staynest-backend/internal/store"
	"github.com/staynest/staynest-backend/internal/token"
	"github.com/staynest/staynest-backend/pkg/utils"
)

// AccountService handles registration, sign-in and refresh-token rotation.
type AccountService struct {
	users  store.UserStore
	tokens *token.Service
}

func NewAccountService(users store.UserStore, tokens *token.Service) *AccountService {
	return &AccountService{users: users, tokens: tokens}
}

// Register creates a new user with a hashed password. The plaintext never
// leaves this function.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, httperr.BadRequest("Name, email, and password are required")
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, httperr.Conflict("Email-id is already in use")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		// The unique index catches the race two concurrent registrations lose
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, httperr.Conflict("Email-id is already in use")
		}
		return nil, err
	}

	return sanitize(user), nil
}

// Login verifies the password and issues a fresh access/refresh token pair.
// The new refresh token is persisted on the user, overwriting any prior value.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	if email == "" || password == "" {
		return nil, "", "", httperr.BadRequest("Email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", "", httperr.Conflict("User not found")
	}
	if err != nil {
		return nil, "", "", err
	}

	ok, err := utils.VerifyPassword(password, user.Password)
	if err != nil || !ok {
		return nil, "", "", httperr.Forbidden("Incorrect password")
	}

	accessToken, refreshToken, err := s.issueAndStoreTokens(ctx, user)
	if err != nil {
		return nil, "", "", err
	}

	return sanitize(user), accessToken, refreshToken, nil
}

// Refresh rotates the token pair. The presented refresh token must verify and
// match the stored copy; a rotated-away token is refused even before expiry.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	if refreshToken == "" {
		return nil, "", "", httperr.Unauthorized("Refresh token is missing")
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, "", "", httperr.Forbidden("Invalid or expired refresh token")
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, "", "", httperr.Forbidden("Invalid or expired refresh token")
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", "", httperr.Forbidden("Invalid or expired refresh token")
	}
	if err != nil {
		return nil, "", "", err
	}

	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, "", "", httperr.Forbidden("Refresh token has been revoked")
	}

	newAccess, newRefresh, err := s.issueAndStoreTokens(ctx, user)
	if err != nil {
		return nil, "", "", err
	}

	return sanitize(user), newAccess, newRefresh, nil
}

func (s *AccountService) issueAndStoreTokens(ctx context.Context, user *models.User) (string, string, error) {
	accessToken, err := s.tokens.IssueAccess(user.ID.Hex(), user.Email)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := s.tokens.IssueRefresh(user.ID.Hex())
	if err != nil {
		return "", "", err
	}
	if err := s.users.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// sanitize strips the password digest and refresh token before a user record
// is handed back to a caller. The json tags already hide both fields, this
// clears them from the in-memory copy too.
func sanitize(user *models.User) *models.User {
	clone := *user
	clone.Password = ""
	clone.RefreshToken = ""
	return &clone
}
