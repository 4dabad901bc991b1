package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"researchhub/internal/database"
	"researchhub/internal/domain"
	"researchhub/internal/middleware"
	"researchhub/internal/modules/auth"
	"researchhub/internal/modules/content"
	"researchhub/internal/modules/moderation"
	"researchhub/internal/modules/profile"
	"researchhub/internal/modules/settings"
	"researchhub/internal/modules/team"
	jwtsvc "researchhub/internal/pkg/jwt"
	"researchhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	adminEmail    = "admin@test.local"
	adminPassword = "AdminPass123!"
)

type E2ETestSuite struct {
	router *gin.Engine
	db     *gorm.DB
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	// Every pooled connection would otherwise get its own empty
	// in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repository.AutoMigrate(db), "Failed to migrate")

	accountRepo := repository.NewAccountRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	contentRepo := repository.NewContentRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)
	policy := domain.TransitionPolicy{}

	authHandler := auth.NewHandler(auth.NewService(accountRepo, registrationRepo, jwtService))
	moderationHandler := moderation.NewHandler(moderation.NewService(accountRepo, registrationRepo, contentRepo, policy))
	contentHandler := content.NewHandler(content.NewService(contentRepo))
	profileHandler := profile.NewHandler(profile.NewService(accountRepo, contentRepo))
	teamHandler := team.NewHandler(team.NewService(teamRepo))
	settingsHandler := settings.NewHandler(settings.NewService(settingRepo))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	authHandler.RegisterRoutes(v1)
	contentHandler.RegisterPublicRoutes(v1)
	teamHandler.RegisterPublicRoutes(v1)
	settingsHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("/")
	protected.Use(middleware.AuthRequired(jwtService, accountRepo))
	{
		authHandler.RegisterProtectedRoutes(protected)
		profileHandler.RegisterRoutes(protected)
		contentHandler.RegisterProtectedRoutes(protected)
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.AuthRequired(jwtService, accountRepo))
	{
		accounts := admin.Group("/")
		accounts.Use(middleware.RequireCapability(domain.CapModerateAccounts))
		moderationHandler.RegisterRoutes(accounts)

		contentAdmin := admin.Group("/")
		contentAdmin.Use(middleware.RequireCapability(domain.CapModerateContent))
		contentHandler.RegisterAdminRoutes(contentAdmin)

		teamAdmin := admin.Group("/")
		teamAdmin.Use(middleware.RequireCapability(domain.CapManageTeamMembers))
		teamHandler.RegisterAdminRoutes(teamAdmin)

		settingsAdmin := admin.Group("/")
		settingsAdmin.Use(middleware.RequireCapability(domain.CapManageSiteSettings))
		settingsHandler.RegisterAdminRoutes(settingsAdmin)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	err = accountRepo.Create(t.Context(), &domain.Account{
		Email:        adminEmail,
		PasswordHash: string(hash),
		Name:         "Test Admin",
		Role:         domain.RoleAdmin,
		Status:       domain.StatusApproved,
	})
	require.NoError(t, err, "Failed to create admin account")

	return &E2ETestSuite{router: r, db: db}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	t.Helper()
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp),
		"Failed to parse response. Status: %d, Body: %s", w.Code, w.Body.String())
	return &resp
}

func (s *E2ETestSuite) login(t *testing.T, email, password string) (string, *TestResponse) {
	t.Helper()
	w := s.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	resp := parseResponse(t, w)
	token, _ := resp.Data["access_token"].(string)
	require.NotEmpty(t, token)
	return token, resp
}

func (s *E2ETestSuite) register(t *testing.T, email, name string) int64 {
	t.Helper()
	w := s.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
		"email":          email,
		"password":       "Password123!",
		"name":           name,
		"motivation":     "I want to contribute to open research",
		"field_category": "Data Science",
		"skills":         []string{"python", "go"},
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "registration failed: %s", w.Body.String())

	resp := parseResponse(t, w)
	account := resp.Data["account"].(map[string]interface{})
	assert.Equal(t, "pending", account["status"])
	return int64(account["id"].(float64))
}

func (s *E2ETestSuite) moderate(t *testing.T, adminToken string, accountID int64, action string) *httptest.ResponseRecorder {
	t.Helper()
	return s.makeRequest("PATCH",
		fmt.Sprintf("/api/v1/admin/accounts/%d/moderate", accountID),
		map[string]interface{}{"action": action}, adminToken)
}

func capabilityList(resp *TestResponse) []string {
	raw, _ := resp.Data["capabilities"].([]interface{})
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		out = append(out, v.(string))
	}
	return out
}

func TestFlow1_RegistrationAndModeration(t *testing.T) {
	suite := setupTestSuite(t)

	var memberID int64
	adminToken, _ := suite.login(t, adminEmail, adminPassword)

	t.Run("POST /auth/register", func(t *testing.T) {
		memberID = suite.register(t, "member@test.local", "New Member")
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
			"email":          "member@test.local",
			"password":       "Password123!",
			"name":           "Someone Else",
			"motivation":     "duplicate",
			"field_category": "Biology",
		}, "")

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "EMAIL_EXISTS", resp.Error.Code)
	})

	t.Run("pending member can log in but only see own status", func(t *testing.T) {
		token, resp := suite.login(t, "member@test.local", "Password123!")
		assert.Equal(t, []string{"view_own_status"}, capabilityList(resp))

		w := suite.makeRequest("POST", "/api/v1/content/research", map[string]interface{}{
			"title":       "Too early",
			"description": "submitted while pending",
		}, token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin sees the pending registration", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/admin/registrations?status=pending", nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		regs := resp.Data["registrations"].([]interface{})
		require.Len(t, regs, 1)
		entry := regs[0].(map[string]interface{})
		account := entry["account"].(map[string]interface{})
		assert.Equal(t, "member@test.local", account["email"])
	})

	t.Run("PATCH /admin/accounts/:id/moderate approve", func(t *testing.T) {
		w := suite.moderate(t, adminToken, memberID, "approve")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		account := resp.Data["account"].(map[string]interface{})
		assert.Equal(t, "approved", account["status"])
	})

	t.Run("approved member can now submit content", func(t *testing.T) {
		token, resp := suite.login(t, "member@test.local", "Password123!")
		assert.Contains(t, capabilityList(resp), "submit_content")

		w := suite.makeRequest("POST", "/api/v1/content/research", map[string]interface{}{
			"title":       "Reef survey notes",
			"description": "First field season",
		}, token)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("approving an approved account is a conflict", func(t *testing.T) {
		w := suite.moderate(t, adminToken, memberID, "approve")
		require.Equal(t, http.StatusConflict, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, "INVALID_TRANSITION", resp.Error.Code)
		details := resp.Error.Details.(map[string]interface{})
		assert.Equal(t, "approved", details["current_status"])
		assert.Equal(t, "approve", details["action"])
	})

	t.Run("suspension cuts access on the next request", func(t *testing.T) {
		token, _ := suite.login(t, "member@test.local", "Password123!")

		w := suite.moderate(t, adminToken, memberID, "suspend")
		require.Equal(t, http.StatusOK, w.Code)

		// Same token, but the account record now says suspended.
		w = suite.makeRequest("POST", "/api/v1/content/research", map[string]interface{}{
			"title":       "After suspension",
			"description": "should be blocked",
		}, token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("rejecting a non-pending account is a conflict", func(t *testing.T) {
		w := suite.moderate(t, adminToken, memberID, "reject")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown action is a validation error", func(t *testing.T) {
		w := suite.moderate(t, adminToken, memberID, "banish")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("member cannot reach admin routes", func(t *testing.T) {
		otherID := suite.register(t, "other@test.local", "Other Member")
		w := suite.moderate(t, adminToken, otherID, "approve")
		require.Equal(t, http.StatusOK, w.Code)

		token, _ := suite.login(t, "other@test.local", "Password123!")
		w = suite.makeRequest("GET", "/api/v1/admin/registrations", nil, token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestFlow2_ContentLifecycle(t *testing.T) {
	suite := setupTestSuite(t)
	adminToken, _ := suite.login(t, adminEmail, adminPassword)

	memberID := suite.register(t, "author@test.local", "Author")
	w := suite.moderate(t, adminToken, memberID, "approve")
	require.Equal(t, http.StatusOK, w.Code)
	memberToken, _ := suite.login(t, "author@test.local", "Password123!")

	var itemID int64
	var version int64

	t.Run("member submits a draft", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/content/project", map[string]interface{}{
			"title":       "Sensor network",
			"description": "Low-cost air quality nodes",
			"as_draft":    true,
		}, memberToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		item := resp.Data["item"].(map[string]interface{})
		itemID = int64(item["id"].(float64))
		version = int64(item["version"].(float64))
		assert.Equal(t, false, item["published"])
		assert.NotEmpty(t, item["public_id"])
	})

	t.Run("drafts are invisible publicly", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/content/project", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.Empty(t, resp.Data["items"])

		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/content/project/%d", itemID), nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("member edits own draft", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/content/project/%d", itemID), map[string]interface{}{
			"title":   "Sensor network v2",
			"version": version,
		}, memberToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		item := resp.Data["item"].(map[string]interface{})
		version = int64(item["version"].(float64))
		assert.Equal(t, "Sensor network v2", item["title"])
	})

	t.Run("member cannot publish own item", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/content/project/%d", itemID), map[string]interface{}{
			"published": true,
			"version":   version,
		}, memberToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("stale version is a conflict", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/content/project/%d", itemID), map[string]interface{}{
			"title":   "stale write",
			"version": version - 1,
		}, memberToken)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("admin publishes and features the item", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/content/project/%d", itemID), map[string]interface{}{
			"published": true,
			"featured":  true,
			"version":   version,
		}, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		item := resp.Data["item"].(map[string]interface{})
		version = int64(item["version"].(float64))
		assert.Equal(t, true, item["published"])
	})

	t.Run("published item is publicly visible", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/content/project?featured=true", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		items := resp.Data["items"].([]interface{})
		require.Len(t, items, 1)

		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/content/project/%d", itemID), nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin list includes drafts, search filters", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/content/project", map[string]interface{}{
			"title":       "Second draft",
			"description": "unrelated",
			"as_draft":    true,
		}, memberToken)
		require.Equal(t, http.StatusCreated, w.Code)

		w = suite.makeRequest("GET", "/api/v1/admin/content/project", nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.Len(t, resp.Data["items"].([]interface{}), 2)

		w = suite.makeRequest("GET", "/api/v1/admin/content/project?search=sensor", nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code)
		resp = parseResponse(t, w)
		assert.Len(t, resp.Data["items"].([]interface{}), 1)
	})

	t.Run("member cannot delete, admin can", func(t *testing.T) {
		w := suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/admin/content/project/%d", itemID), nil, memberToken)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/admin/content/project/%d", itemID), nil, adminToken)
		assert.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/content/project/%d", itemID), nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFlow3_ProfileAndSubmissions(t *testing.T) {
	suite := setupTestSuite(t)
	adminToken, _ := suite.login(t, adminEmail, adminPassword)

	memberID := suite.register(t, "profile@test.local", "Profile Member")
	w := suite.moderate(t, adminToken, memberID, "approve")
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := suite.login(t, "profile@test.local", "Password123!")

	var version int64

	t.Run("GET /profile", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/profile", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		account := resp.Data["account"].(map[string]interface{})
		assert.Equal(t, "profile@test.local", account["email"])
		version = int64(account["version"].(float64))
	})

	t.Run("PATCH /profile with stale version", func(t *testing.T) {
		w := suite.makeRequest("PATCH", "/api/v1/profile", map[string]interface{}{
			"bio":     "stale",
			"version": version + 10,
		}, token)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("PATCH /profile", func(t *testing.T) {
		w := suite.makeRequest("PATCH", "/api/v1/profile", map[string]interface{}{
			"bio":     "Marine biologist",
			"city":    "Lisbon",
			"version": version,
		}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		account := resp.Data["account"].(map[string]interface{})
		assert.Equal(t, "Marine biologist", account["bio"])
		assert.Equal(t, "Lisbon", account["city"])
	})

	t.Run("GET /profile/submissions", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/content/research", map[string]interface{}{
			"title":       "My draft",
			"description": "work in progress",
			"as_draft":    true,
		}, token)
		require.Equal(t, http.StatusCreated, w.Code)

		w = suite.makeRequest("GET", "/api/v1/profile/submissions", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		submissions := resp.Data["submissions"].(map[string]interface{})
		assert.Len(t, submissions["research"].([]interface{}), 1)
		assert.Empty(t, submissions["project"])
	})
}

func TestFlow4_AdminSurfaces(t *testing.T) {
	suite := setupTestSuite(t)
	adminToken, _ := suite.login(t, adminEmail, adminPassword)

	t.Run("team CRUD and public listing", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/admin/team", map[string]interface{}{
			"name":          "Aisha Rahman",
			"role":          "Director of Research",
			"team_role":     "founder",
			"display_order": 1,
		}, adminToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		member := resp.Data["member"].(map[string]interface{})
		memberID := int64(member["id"].(float64))

		w = suite.makeRequest("POST", "/api/v1/admin/team", map[string]interface{}{
			"name":      "Nobody",
			"team_role": "ceo",
		}, adminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = suite.makeRequest("GET", "/api/v1/team", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		resp = parseResponse(t, w)
		assert.Len(t, resp.Data["members"].([]interface{}), 1)

		w = suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/admin/team/%d", memberID), nil, adminToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("settings upsert and public read", func(t *testing.T) {
		w := suite.makeRequest("PUT", "/api/v1/admin/settings", map[string]string{
			"site_title":    "Research Hub",
			"contact_email": "hello@test.local",
		}, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = suite.makeRequest("PUT", "/api/v1/admin/settings", map[string]string{
			"site_title": "Research Hub Updated",
		}, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("GET", "/api/v1/settings", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		values := resp.Data["settings"].(map[string]interface{})
		assert.Equal(t, "Research Hub Updated", values["site_title"])
		assert.Equal(t, "hello@test.local", values["contact_email"])
	})

	t.Run("registrations export as CSV", func(t *testing.T) {
		suite.register(t, "export@test.local", "Export Me")

		w := suite.makeRequest("GET", "/api/v1/admin/registrations/export?status=pending", nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
		assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		require.Len(t, lines, 2) // header + one pending row
		assert.Contains(t, lines[0], "Email")
		assert.Contains(t, lines[1], "export@test.local")
	})

	t.Run("statistics reflect the data", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/admin/stats", nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		byStatus := resp.Data["accounts_by_status"].(map[string]interface{})
		assert.Equal(t, float64(1), byStatus["pending"])
		assert.Equal(t, float64(1), byStatus["approved"]) // the admin
	})

	t.Run("delete registration removes account and application", func(t *testing.T) {
		accountID := suite.register(t, "todelete@test.local", "To Delete")

		w := suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/admin/registrations/%d", accountID), nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "todelete@test.local",
			"password": "Password123!",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
