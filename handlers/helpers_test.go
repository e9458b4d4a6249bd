package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"

	"hrportal/config"
	"hrportal/database"
	"hrportal/events"
	"hrportal/middleware"
	"hrportal/models"
)

// testNow is the fixed clock for handler tests: Wednesday 2026-08-26.
var testNow = time.Date(2026, time.August, 26, 10, 0, 0, 0, time.UTC)

// testWeekStart is the Monday of testNow's week.
var testWeekStart = time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		JWTExpiration:   time.Hour,
		HistoryPageSize: 5,
		WeekLookBack:    4,
	}
}

// setupTest points the global handle at a fresh sqlite database and returns
// the shared config.
func setupTest(t *testing.T) *config.Config {
	t.Helper()
	cfg := testConfig()
	middleware.SetJWTSecret(cfg.JWTSecret)
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.Open(sqlite.Open(dbPath), logger.Default.LogMode(logger.Silent)))
	return cfg
}

func createUser(t *testing.T, email string, role models.Role) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Email:          email,
		FullName:       "Test " + email,
		PasswordHash:   string(hashed),
		Role:           role,
		Department:     "Engineering",
		EmployeeType:   "Full-Time",
		EmployeeNumber: "EMP-" + email,
	}
	require.NoError(t, database.GetDB().Create(user).Error)
	return user
}

func createProject(t *testing.T, code, name string) *models.Project {
	t.Helper()
	project := &models.Project{Code: code, Name: name, Active: true}
	require.NoError(t, database.GetDB().Create(project).Error)
	return project
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := middleware.GenerateToken(user, time.Hour)
	require.NoError(t, err)
	return token
}

// testRouter mounts the full authenticated route tree against the given
// handlers so tests exercise the same middleware chain as main.
func testRouter(cfg *config.Config, th *TimesheetHandler, ah *ApprovalHandler) chi.Router {
	recorder := events.NewDBRecorder(database.GetDB())
	if th == nil {
		th = NewTimesheetHandler(cfg, recorder)
		th.now = func() time.Time { return testNow }
	}
	if ah == nil {
		ah = NewApprovalHandler(cfg, recorder)
		ah.now = func() time.Time { return testNow }
	}
	authHandler := NewAuthHandler(cfg)
	leaveHandler := NewLeaveHandler(cfg)
	projectHandler := NewProjectHandler()
	exportHandler := NewExportHandler(cfg)

	router := chi.NewRouter()
	router.Post("/api/login", authHandler.Login)
	router.Post("/api/register", authHandler.Register)
	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)
		r.Post("/api/logout", authHandler.Logout)
		r.Get("/api/session", authHandler.Session)
		r.Get("/api/timesheets/week", th.Week)
		r.Put("/api/timesheets/week/{start}/days/{weekday}", th.SaveDay)
		r.Post("/api/timesheets", th.SaveWeek)
		r.Post("/api/timesheets/{id}/submit", th.Submit)
		r.Get("/api/timesheets/history", th.History)
		r.Post("/api/leave", leaveHandler.Create)
		r.Get("/api/leave", leaveHandler.List)
		r.Get("/api/projects", projectHandler.List)
		r.Get("/api/projects/resolve", projectHandler.Resolve)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleManager, models.RoleHR, models.RoleAdmin))
			r.Get("/api/approvals/timesheets", ah.PendingTimesheets)
			r.Post("/api/approvals/timesheets/{id}", ah.ActOnTimesheet)
			r.Get("/api/approvals/leave", ah.PendingLeave)
			r.Post("/api/approvals/leave/{id}", ah.ActOnLeave)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleHR, models.RoleAdmin))
			r.Get("/api/export/csv", exportHandler.ExportCSV)
		})
	})
	return router
}

func doRequest(t *testing.T, router chi.Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), "body: %s", rec.Body.String())
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body: %s", rec.Body.String())
}
