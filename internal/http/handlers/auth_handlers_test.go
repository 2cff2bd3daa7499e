package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labforge/labstock/internal/http/handlers"
	"github.com/labforge/labstock/internal/http/router"
	"github.com/labforge/labstock/internal/models"
)

// login posts credentials from a dedicated client address so the per-IP
// limiter never throttles unrelated tests.
func login(t *testing.T, r http.Handler, email, password, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(handlers.CredentialsRequest{Email: email, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginHandler(t *testing.T) {
	r := router.NewRouter()

	w := login(t, r, adminUser.Email, "secret", "10.1.0.1:40000")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp handlers.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Token == "" || resp.RefreshToken == "" {
		t.Error("expected both an access and a refresh token")
	}
	if resp.User.Email != adminUser.Email {
		t.Errorf("expected user %s, got %s", adminUser.Email, resp.User.Email)
	}
}

func TestLoginHandler_BadCredentials(t *testing.T) {
	r := router.NewRouter()

	if w := login(t, r, adminUser.Email, "wrong", "10.1.0.2:40000"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong password, got %d", w.Code)
	}
	if w := login(t, r, "nobody@lab.example", "secret", "10.1.0.3:40000"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for unknown email, got %d", w.Code)
	}
}

func TestLoginHandler_DeactivatedAccount(t *testing.T) {
	r := router.NewRouter()
	user := seedUser("ghost", "ghost@lab.example", models.RoleUser)
	if err := userRepo.Deactivate(user.ID); err != nil {
		t.Fatalf("error deactivating user: %v", err)
	}

	if w := login(t, r, user.Email, "secret", "10.1.0.4:40000"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for deactivated account, got %d", w.Code)
	}
}

func TestLoginHandler_RateLimited(t *testing.T) {
	r := router.NewRouter()

	var lastCode int
	for i := 0; i < 10; i++ {
		w := login(t, r, adminUser.Email, "wrong", "10.1.0.5:40000")
		lastCode = w.Code
		if lastCode == http.StatusTooManyRequests {
			break
		}
	}
	if lastCode != http.StatusTooManyRequests {
		t.Errorf("expected a burst of logins to hit the limiter, last code %d", lastCode)
	}
}

func TestRefreshHandler_SingleUse(t *testing.T) {
	r := router.NewRouter()

	w := login(t, r, adminUser.Email, "secret", "10.1.0.6:40000")
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d", w.Code)
	}
	var loginResp handlers.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&loginResp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	refresh := func(token string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(handlers.RefreshRequest{RefreshToken: token})
		req := httptest.NewRequest(http.MethodPost, "/refresh", bytes.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := refresh(loginResp.RefreshToken)
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200 on first refresh, got %d: %s", first.Code, first.Body.String())
	}
	var refreshResp handlers.RefreshResult
	if err := json.NewDecoder(first.Body).Decode(&refreshResp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if refreshResp.Token == "" || refreshResp.RefreshToken == "" {
		t.Error("expected a fresh token pair")
	}
	if refreshResp.RefreshToken == loginResp.RefreshToken {
		t.Error("expected a rotated refresh token")
	}

	// The consumed token is gone.
	if second := refresh(loginResp.RefreshToken); second.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 reusing a refresh token, got %d", second.Code)
	}
}

func TestLogoutHandler_RevokesRefreshTokens(t *testing.T) {
	r := router.NewRouter()

	w := login(t, r, adminUser.Email, "secret", "10.1.0.7:40000")
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d", w.Code)
	}
	var loginResp handlers.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&loginResp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, authRequest(http.MethodPost, "/logout", loginResp.Token, nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	body, _ := json.Marshal(handlers.RefreshRequest{RefreshToken: loginResp.RefreshToken})
	req := httptest.NewRequest(http.MethodPost, "/refresh", bytes.NewReader(body))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", w.Code)
	}
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	r := router.NewRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authRequest(http.MethodGet, "/components", "", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, authRequest(http.MethodGet, "/components", "not-a-jwt", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with malformed token, got %d", w.Code)
	}
}
