package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/staynest/staynest-backend/internal/httperr"
	"github.com/staynest/staynest-backend/internal/middleware"
	"github.com/staynest/staynest-backend/internal/models"
	"github.com/staynest/staynest-backend/internal/services"
)

// SignUp request
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn request
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn / refresh response: tokens travel both as cookies and in the body,
// so clients can use either channel.
type SignInResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

type AuthHandler struct {
	accounts *services.AccountService
}

func NewAuthHandler(accounts *services.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// SignUp handles user registration.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, httperr.BadRequest("Invalid request body"))
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"createdUser": user,
	})
}

// SignIn handles user login.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, httperr.BadRequest("Invalid request body"))
		return
	}

	user, accessToken, refreshToken, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	setTokenCookies(w, accessToken, refreshToken)
	writeJSON(w, http.StatusOK, SignInResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// RefreshToken rotates the access/refresh token pair. The refresh token is
// read from the cookie, with the body as fallback.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	refreshToken := ""
	if cookie, err := r.Cookie("refreshToken"); err == nil {
		refreshToken = cookie.Value
	}
	if refreshToken == "" {
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	user, accessToken, newRefreshToken, err := h.accounts.Refresh(r.Context(), refreshToken)
	if err != nil {
		writeError(w, err)
		return
	}

	setTokenCookies(w, accessToken, newRefreshToken)
	writeJSON(w, http.StatusOK, SignInResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	})
}

func setTokenCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    refreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
	})
}
