package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	organizationdomain "github.com/lazisku/maal/internal/organization/domain"
	orgrepository "github.com/lazisku/maal/internal/organization/repository"
	orgservice "github.com/lazisku/maal/internal/organization/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&organizationdomain.Organization{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandlingMiddleware())

	srv := &Server{
		engine: r,
		organizationSvc: orgservice.New(orgservice.Params{
			DB:    db,
			Log:   zap.NewNop(),
			GenID: node,
			Repo:  orgrepository.Provide(),
		}),
	}
	srv.engine.POST("/api/organizations", srv.CreateOrganization)
	srv.engine.GET("/api/organizations", srv.ListOrganizations)
	srv.engine.GET("/api/organizations/:id", srv.GetOrganizationByID)

	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func TestCreateAndGetOrganization(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/organizations", gin.H{
		"name":     "Cabang Kota",
		"scope":    "BRANCH",
		"district": "kota",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created organizationdomain.Organization
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, organizationdomain.ScopeBranch, created.Scope)

	w = doJSON(t, srv, http.MethodGet, "/api/organizations/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched organizationdomain.Organization
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Cabang Kota", fetched.Name)
}

func TestCreateOrganizationRejectsBadScope(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/organizations", gin.H{
		"name":  "Cabang Kota",
		"scope": "REGION",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_scope")
}

func TestGetOrganizationNotFound(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/organizations/123456789", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListOrganizationsFiltersByScope(t *testing.T) {
	srv := newTestServer(t)

	for _, org := range []gin.H{
		{"name": "Cabang", "scope": "BRANCH", "district": "a"},
		{"name": "Ranting", "scope": "TWIG", "district": "a"},
	} {
		w := doJSON(t, srv, http.MethodPost, "/api/organizations", org)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, srv, http.MethodGet, "/api/organizations?scope=TWIG", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp organizationdomain.ListOrganizationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Organizations, 1)
	assert.Equal(t, "Ranting", resp.Organizations[0].Name)
}
