package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dimitrije/frame-nest/internal/metrics"
	"github.com/dimitrije/frame-nest/internal/middleware"
	"github.com/dimitrije/frame-nest/internal/models"
	"github.com/dimitrije/frame-nest/internal/services"
	"github.com/dimitrije/frame-nest/pkg/dto"
	"github.com/dimitrije/frame-nest/tests/testutil"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testOwner   = models.Principal("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM")
	testGrantee = models.Principal("ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG")
)

func newTestJWTService() *services.JWTService {
	return services.NewJWTService("test-secret-key", 15*time.Minute)
}

func generateTestToken(t *testing.T, jwtSvc *services.JWTService, principal models.Principal) string {
	t.Helper()
	tok, err := jwtSvc.GenerateAccessToken(principal)
	require.NoError(t, err)
	return tok.Token
}

func doRequest(t *testing.T, app http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func setupCollectionTest(t *testing.T) (*testutil.MockCollectionService, *CollectionHandler, *metrics.Metrics, *services.JWTService) {
	t.Helper()
	mockCollectionService := new(testutil.MockCollectionService)
	m := metrics.New(prometheus.NewRegistry())
	handler := NewCollectionHandler(mockCollectionService, m)
	return mockCollectionService, handler, m, newTestJWTService()
}

func TestCollectionHandler_Create_Success(t *testing.T) {
	mockCollectionService, handler, m, jwtSvc := setupCollectionTest(t)

	collection := &models.Collection{ID: 1, Name: "Vacation 2023", Description: "Summer trip photos", Owner: testOwner}
	mockCollectionService.On("Create", mock.Anything, "Vacation 2023", "Summer trip photos", testOwner).Return(collection, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/collections", handler.Create)

	body := dto.CreateCollectionRequest{Name: "Vacation 2023", Description: "Summer trip photos"}
	rec := doRequest(t, app, http.MethodPost, "/collections", body, generateTestToken(t, jwtSvc, testOwner))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response dto.CreatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, int64(1), response.ID)
	assert.Equal(t, 1.0, promtest.ToFloat64(m.Operations.WithLabelValues(metrics.OpCreateCollection, "ok")))

	mockCollectionService.AssertExpectations(t)
}

func TestCollectionHandler_Create_NotAuthenticated(t *testing.T) {
	_, handler, _, jwtSvc := setupCollectionTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/collections", handler.Create)

	rec := doRequest(t, app, http.MethodPost, "/collections", dto.CreateCollectionRequest{Name: "x"}, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCollectionHandler_Create_MissingName(t *testing.T) {
	mockCollectionService, handler, _, jwtSvc := setupCollectionTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/collections", handler.Create)

	rec := doRequest(t, app, http.MethodPost, "/collections", dto.CreateCollectionRequest{Description: "no name"}, generateTestToken(t, jwtSvc, testOwner))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name is required")
	mockCollectionService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCollectionHandler_Create_InvalidArgument(t *testing.T) {
	mockCollectionService, handler, m, jwtSvc := setupCollectionTest(t)

	err := fmt.Errorf("%w: name must be ASCII", services.ErrInvalidArgument)
	mockCollectionService.On("Create", mock.Anything, "Feriené", "", testOwner).Return(nil, err)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/collections", handler.Create)

	rec := doRequest(t, app, http.MethodPost, "/collections", dto.CreateCollectionRequest{Name: "Feriené"}, generateTestToken(t, jwtSvc, testOwner))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name must be ASCII")
	assert.Equal(t, 1.0, promtest.ToFloat64(m.Operations.WithLabelValues(metrics.OpCreateCollection, "invalid")))
}

func TestCollectionHandler_Create_ServiceError(t *testing.T) {
	mockCollectionService, handler, _, jwtSvc := setupCollectionTest(t)

	mockCollectionService.On("Create", mock.Anything, "Album", "", testOwner).Return(nil, errors.New("db down"))

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/collections", handler.Create)

	rec := doRequest(t, app, http.MethodPost, "/collections", dto.CreateCollectionRequest{Name: "Album"}, generateTestToken(t, jwtSvc, testOwner))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}

func TestCollectionHandler_Get_Found(t *testing.T) {
	mockCollectionService, handler, _, jwtSvc := setupCollectionTest(t)

	collection := &models.Collection{ID: 1, Name: "Vacation 2023", Description: "Summer trip photos", Owner: testOwner}
	mockCollectionService.On("GetByID", mock.Anything, int64(1)).Return(collection, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/collections/:collectionId", handler.Get)

	rec := doRequest(t, app, http.MethodGet, "/collections/1", nil, generateTestToken(t, jwtSvc, testGrantee))

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.CollectionLookupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotNil(t, response.Collection)
	assert.Equal(t, "Vacation 2023", response.Collection.Name)
	assert.Equal(t, string(testOwner), response.Collection.Owner)
}

func TestCollectionHandler_Get_Absent(t *testing.T) {
	mockCollectionService, handler, _, jwtSvc := setupCollectionTest(t)

	mockCollectionService.On("GetByID", mock.Anything, int64(99)).Return(nil, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/collections/:collectionId", handler.Get)

	rec := doRequest(t, app, http.MethodGet, "/collections/99", nil, generateTestToken(t, jwtSvc, testOwner))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"collection":null}`, rec.Body.String())
}

func TestCollectionHandler_Get_InvalidID(t *testing.T) {
	_, handler, _, jwtSvc := setupCollectionTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/collections/:collectionId", handler.Get)

	for _, id := range []string{"abc", "1.5"} {
		rec := doRequest(t, app, http.MethodGet, "/collections/"+id, nil, generateTestToken(t, jwtSvc, testOwner))
		assert.Equal(t, http.StatusBadRequest, rec.Code, id)
	}
}

func TestCollectionHandler_Get_NonPositiveIDIsAbsent(t *testing.T) {
	mockCollectionService, handler, _, jwtSvc := setupCollectionTest(t)

	mockCollectionService.On("GetByID", mock.Anything, int64(0)).Return(nil, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/collections/:collectionId", handler.Get)

	rec := doRequest(t, app, http.MethodGet, "/collections/0", nil, generateTestToken(t, jwtSvc, testOwner))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"collection":null}`, rec.Body.String())
	mockCollectionService.AssertExpectations(t)
}

func TestCollectionHandler_List(t *testing.T) {
	mockCollectionService, handler, _, jwtSvc := setupCollectionTest(t)

	collections := []models.Collection{
		{ID: 1, Name: "A", Owner: testOwner},
		{ID: 3, Name: "B", Owner: testOwner},
	}
	mockCollectionService.On("GetByOwner", mock.Anything, testOwner).Return(collections, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/collections", handler.List)

	rec := doRequest(t, app, http.MethodGet, "/collections", nil, generateTestToken(t, jwtSvc, testOwner))

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []dto.CollectionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 2)
	assert.Equal(t, int64(1), response[0].ID)
	assert.Equal(t, int64(3), response[1].ID)
}
