package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"hrportal/api"
	"hrportal/models"
)

func TestRegisterLoginSession_RoundTrip(t *testing.T) {
	cfg := setupTest(t)
	router := testRouter(cfg, nil, nil)

	rec := doRequest(t, router, http.MethodPost, "/api/register", "", api.RegisterRequest{
		Email:          "Alice@Corp.example",
		Password:       "s3cret-pass",
		FullName:       "Alice Doe",
		Department:     "Engineering",
		EmployeeType:   "Full-Time",
		EmployeeNumber: "EMP042",
	})
	requireStatus(t, rec, http.StatusCreated)

	// Email was normalized on registration.
	rec = doRequest(t, router, http.MethodPost, "/api/login", "", api.LoginRequest{
		Email:    "alice@corp.example",
		Password: "s3cret-pass",
	})
	requireStatus(t, rec, http.StatusOK)
	var login api.LoginResponse
	decodeBody(t, rec, &login)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, models.RoleEmployee, login.Session.Role)

	rec = doRequest(t, router, http.MethodGet, "/api/session", login.Token, nil)
	requireStatus(t, rec, http.StatusOK)
	var session api.Session
	decodeBody(t, rec, &session)
	assert.Equal(t, "alice@corp.example", session.Email)
	assert.Equal(t, "Alice Doe", session.FullName)
	assert.Equal(t, "Engineering", session.Department)
	assert.Equal(t, "Full-Time", session.EmployeeType)
	assert.Equal(t, "EMP042", session.EmployeeNumber)
}

func TestLogin_WrongPassword(t *testing.T) {
	cfg := setupTest(t)
	createUser(t, "alice@corp", models.RoleEmployee)
	router := testRouter(cfg, nil, nil)

	rec := doRequest(t, router, http.MethodPost, "/api/login", "", api.LoginRequest{
		Email:    "alice@corp",
		Password: "wrong",
	})
	requireStatus(t, rec, http.StatusUnauthorized)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	cfg := setupTest(t)
	createUser(t, "alice@corp", models.RoleEmployee)
	router := testRouter(cfg, nil, nil)

	rec := doRequest(t, router, http.MethodPost, "/api/register", "", api.RegisterRequest{
		Email:    "alice@corp",
		Password: "s3cret-pass",
		FullName: "Alice Again",
	})
	requireStatus(t, rec, http.StatusConflict)
}

func TestRegister_ShortPassword(t *testing.T) {
	cfg := setupTest(t)
	router := testRouter(cfg, nil, nil)

	rec := doRequest(t, router, http.MethodPost, "/api/register", "", api.RegisterRequest{
		Email:    "bob@corp",
		Password: "short",
		FullName: "Bob",
	})
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestSession_RequiresToken(t *testing.T) {
	cfg := setupTest(t)
	router := testRouter(cfg, nil, nil)

	rec := doRequest(t, router, http.MethodGet, "/api/session", "", nil)
	requireStatus(t, rec, http.StatusUnauthorized)
}
