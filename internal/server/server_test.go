package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/placementportal/internal/bootstrap"
	"anoa.com/placementportal/internal/config"
	"anoa.com/placementportal/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type client struct {
	t       *testing.T
	handler http.Handler
}

func (c client) do(method, path, token string, body any, out any) int {
	c.t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&payload).Encode(body))
	}

	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)

	if out != nil {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

type authResult struct {
	Token string `json:"token"`
	User  struct {
		ID         string `json:"id"`
		IsApproved bool   `json:"isApproved"`
	} `json:"user"`
	Code string `json:"code"`
}

func newTestClient(t *testing.T) client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	require.NoError(t, bootstrap.SeedAdminUser(db, "admin@placement.local", "admin123"))

	cfg := &config.Config{
		AppEnv:              "test",
		JWTSecret:           "test-secret",
		AllowedOrigins:      []string{"http://localhost:3000"},
		AuthRateLimit:       100,
		AuthRateLimitWindow: time.Minute,
	}

	srv := NewServer(cfg, db, nil, Deps{})
	return client{t: t, handler: srv.Handler()}
}

func TestPlacementWorkflow(t *testing.T) {
	api := newTestClient(t)

	// a company registers and must wait for approval
	var company authResult
	code := api.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "hr@acme.test",
		"password": "secret123",
		"role":     "company",
		"profileData": map[string]any{
			"companyName":   "Acme",
			"industry":      "Software",
			"description":   "Builds things",
			"location":      "Pune",
			"contactPerson": "R. Iyer",
			"contactEmail":  "hr@acme.test",
			"contactPhone":  "555-0202",
		},
	}, &company)
	require.Equal(t, http.StatusCreated, code)
	assert.False(t, company.User.IsApproved)
	assert.Empty(t, company.Token)

	login := func(email, password string) (int, authResult) {
		var res authResult
		code := api.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password}, &res)
		return code, res
	}

	code, res := login("hr@acme.test", "secret123")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "PendingApproval", res.Code)

	code, res = login("hr@acme.test", "wrong-password")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "InvalidCredentials", res.Code)

	code, admin := login("admin@placement.local", "admin123")
	require.Equal(t, http.StatusOK, code)

	code = api.do(http.MethodPut, "/api/admin/approve/"+company.User.ID, admin.Token, nil, nil)
	require.Equal(t, http.StatusOK, code)

	code, companyLogin := login("hr@acme.test", "secret123")
	require.Equal(t, http.StatusOK, code)

	// the company posts a job
	var created struct {
		Job struct {
			ID       string `json:"id"`
			IsActive bool   `json:"isActive"`
		} `json:"job"`
	}
	code = api.do(http.MethodPost, "/api/jobs", companyLogin.Token, map[string]any{
		"title":       "Backend Engineer",
		"description": "Build the placement portal",
		"location":    "Remote",
		"jobType":     "Full-time",
		"salary":      map[string]any{"min": 10, "max": 20},
		"eligibility": map[string]any{"minCGPA": 7, "departments": []string{"CSE"}},
		"deadline":    "2030-06-30",
	}, &created)
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, created.Job.IsActive)

	// a student registers and is active immediately
	var student authResult
	code = api.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "asha@uni.test",
		"password": "secret123",
		"role":     "student",
		"profileData": map[string]any{
			"fullName":       "Asha Rao",
			"phone":          "555-0101",
			"rollNumber":     "CSE-001",
			"department":     "CSE",
			"graduationYear": 2026,
			"cgpa":           8.4,
		},
	}, &student)
	require.Equal(t, http.StatusCreated, code)
	require.NotEmpty(t, student.Token)

	var jobs []map[string]any
	code = api.do(http.MethodGet, "/api/jobs?department=CSE", student.Token, nil, &jobs)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, jobs, 1)

	apply := map[string]string{"jobId": created.Job.ID, "coverLetter": "I would love to join"}
	var applied struct {
		Application struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"application"`
	}
	code = api.do(http.MethodPost, "/api/applications", student.Token, apply, &applied)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "pending", applied.Application.Status)

	var conflict authResult
	code = api.do(http.MethodPost, "/api/applications", student.Token, apply, &conflict)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "DuplicateResource", conflict.Code)

	// students may not review applications
	code = api.do(http.MethodGet, "/api/applications/job/"+created.Job.ID, student.Token, nil, nil)
	assert.Equal(t, http.StatusForbidden, code)

	var received []map[string]any
	code = api.do(http.MethodGet, "/api/applications/job/"+created.Job.ID, companyLogin.Token, nil, &received)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, received, 1)

	code = api.do(http.MethodPut, "/api/applications/"+applied.Application.ID+"/status", companyLogin.Token,
		map[string]string{"status": "shortlisted"}, nil)
	require.Equal(t, http.StatusOK, code)

	var mine []struct {
		Status string `json:"status"`
	}
	code = api.do(http.MethodGet, "/api/applications/student", student.Token, nil, &mine)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, mine, 1)
	assert.Equal(t, "shortlisted", mine[0].Status)

	var unread struct {
		Count int64 `json:"count"`
	}
	code = api.do(http.MethodGet, "/api/notifications/unread-count", student.Token, nil, &unread)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, unread.Count)

	var stats map[string]int64
	code = api.do(http.MethodGet, "/api/admin/statistics", admin.Token, nil, &stats)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, stats["shortlistedApplications"])
	assert.EqualValues(t, 1, stats["totalStudents"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestClient(t)

	var res authResult
	code := api.do(http.MethodGet, "/api/jobs", "", nil, &res)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Unauthorized", res.Code)
}

func TestShutdownReleasesConnections(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	rdb, _ := testutil.NewRedis(t)
	cfg := &config.Config{AppEnv: "test", JWTSecret: "test-secret"}
	srv := NewServer(cfg, db, rdb, Deps{})

	ctx := context.Background()
	require.NoError(t, rdb.Ping(ctx).Err())

	require.NoError(t, srv.Shutdown(ctx))

	assert.ErrorIs(t, rdb.Ping(ctx).Err(), redis.ErrClosed)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.PingContext(ctx))
}
