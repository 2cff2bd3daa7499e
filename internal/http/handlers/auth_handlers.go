package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/labforge/labstock/internal/auth"
	mw "github.com/labforge/labstock/internal/http/middleware"
)

// LoginHandler godoc
// @Summary Authenticate and receive an access + refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "email and password"
// @Success 200 {object} LoginResult
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Router /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	user, err := userRepo.GetByEmail(credentials.Email)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if !user.IsActive {
		http.Error(w, "account is deactivated", http.StatusUnauthorized)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	refreshToken, err := refreshTokens.Issue(user.ID, refreshTokenTTL)
	if err != nil {
		log.Printf("could not issue refresh token: %v", err)
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusOK, LoginResult{Token: token, RefreshToken: refreshToken, User: user}); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// RefreshHandler godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body RefreshRequest true "refresh token"
// @Success 200 {object} RefreshResult
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unknown or expired refresh token"
// @Router /refresh [post]
func RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	userID, err := refreshTokens.Consume(req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrRefreshTokenNotFound) {
			http.Error(w, "invalid refresh token", http.StatusUnauthorized)
			return
		}
		http.Error(w, "could not refresh token", http.StatusInternalServerError)
		return
	}

	user, err := userRepo.GetByID(userID)
	if err != nil || !user.IsActive {
		http.Error(w, "invalid refresh token", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}
	refreshToken, err := refreshTokens.Issue(user.ID, refreshTokenTTL)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusOK, RefreshResult{Token: token, RefreshToken: refreshToken}); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// LogoutHandler godoc
// @Summary Revoke all refresh tokens for the authenticated user
// @Tags auth
// @Security BearerAuth
// @Success 204 "Logged out"
// @Failure 401 {string} string "Unauthorized"
// @Router /logout [post]
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := mw.ActorFromContext(r)
	if !ok {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}
	if err := refreshTokens.RevokeAll(actor.ID); err != nil {
		log.Printf("could not revoke refresh tokens for user %d: %v", actor.ID, err)
		http.Error(w, "could not log out", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// hashPassword wraps bcrypt for the user handlers.
func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
