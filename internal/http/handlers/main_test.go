package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/labforge/labstock/internal/auth"
	"github.com/labforge/labstock/internal/http/handlers"
	"github.com/labforge/labstock/internal/http/router"
	"github.com/labforge/labstock/internal/models"
	"github.com/labforge/labstock/internal/repo"
)

var (
	componentRepo   *repo.InMemoryComponentRepository
	categoryRepo    *repo.InMemoryCategoryRepository
	transactionRepo *repo.InMemoryTransactionRepository
	userRepo        *repo.InMemoryUserRepository

	adminToken      string
	researcherToken string
	engineerToken   string

	adminUser models.User
)

func init() {
	componentRepo = repo.NewInMemoryComponentRepository()
	categoryRepo = repo.NewInMemoryCategoryRepository(componentRepo)
	userRepo = repo.NewInMemoryUserRepository()
	transactionRepo = repo.NewInMemoryTransactionRepository(componentRepo, userRepo)
	metricsRepo := repo.NewInMemoryMetricsRepository()
	metricsRepo.SetRepositories(componentRepo, transactionRepo)

	handlers.SetComponentRepo(componentRepo)
	handlers.SetCategoryRepo(categoryRepo)
	handlers.SetTransactionRepo(transactionRepo)
	handlers.SetUserRepo(userRepo)
	handlers.SetMetricsRepo(metricsRepo)
	handlers.SetRefreshTokenStore(auth.NewInMemoryRefreshTokenStore(), time.Hour)

	admin := seedUser("admin", "admin@lab.example", models.RoleAdmin)
	researcher := seedUser("researcher", "researcher@lab.example", models.RoleResearcher)
	engineer := seedUser("engineer", "engineer@lab.example", models.RoleManufacturingEngineer)
	adminUser = admin

	newToken, err := generateToken(router.NewRouter(), admin.Email, "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
	adminToken = newToken

	if researcherToken, err = auth.GenerateToken(researcher); err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
	if engineerToken, err = auth.GenerateToken(engineer); err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func seedUser(username, email string, role models.Role) models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("error hashing password: %v", err))
	}
	user, err := userRepo.Create(models.User{
		Username:     username,
		Email:        email,
		Role:         role,
		IsActive:     true,
		PasswordHash: string(hash),
	})
	if err != nil {
		panic(fmt.Sprintf("error creating user %s: %v", username, err))
	}
	return user
}

func generateToken(r http.Handler, email, password string) (string, error) {
	payload := handlers.CredentialsRequest{Email: email, Password: password}
	body, _ := json.Marshal(payload)
	loginReq := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	loginReq.RemoteAddr = "127.0.0.1:10001"
	loginW := httptest.NewRecorder()
	r.ServeHTTP(loginW, loginReq)

	if loginW.Code != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d: %s", loginW.Code, loginW.Body.String())
	}
	var resp handlers.LoginResult
	if err := json.NewDecoder(loginW.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %v", err)
	}
	return resp.Token, nil
}

func authRequest(method, target, token string, payload any) *http.Request {
	var req *http.Request
	if payload != nil {
		body, _ := json.Marshal(payload)
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

func clearInventory() {
	transactionRepo.Clear()
	componentRepo.Clear()
	categoryRepo.Clear()
}

func seedCategory(t *testing.T, name string) models.Category {
	t.Helper()
	category, err := categoryRepo.Create(models.Category{Name: name, CreatedAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("error seeding category: %v", err)
	}
	return category
}

func seedComponent(t *testing.T, c models.Component) models.Component {
	t.Helper()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	created, err := componentRepo.Create(c)
	if err != nil {
		t.Fatalf("error seeding component: %v", err)
	}
	return created
}
