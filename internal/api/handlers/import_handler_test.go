package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/leadpilot/leadpilot-backend/internal/api/middleware"
	"github.com/leadpilot/leadpilot-backend/internal/config"
	"github.com/leadpilot/leadpilot-backend/internal/models"
	"github.com/leadpilot/leadpilot-backend/internal/service"
)

type mockImportService struct {
	mock.Mock
}

func (m *mockImportService) Import(ctx context.Context, data []byte, filename, userID string) (*models.ImportResult, error) {
	args := m.Called(ctx, data, filename, userID)
	if result := args.Get(0); result != nil {
		return result.(*models.ImportResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockImportService) Template() ([]byte, error) {
	args := m.Called()
	if data := args.Get(0); data != nil {
		return data.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

type stubAuthService struct {
	userID string
}

func (s *stubAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	return nil, service.ErrInvalidInput
}

func (s *stubAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	return nil, service.ErrInvalidCredentials
}

func (s *stubAuthService) RefreshToken(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	return nil, service.ErrInvalidToken
}

func (s *stubAuthService) Logout(ctx context.Context, refreshToken string) error {
	return nil
}

func (s *stubAuthService) ValidateToken(tokenString string) (string, error) {
	if tokenString == "valid-token" {
		return s.userID, nil
	}
	return "", service.ErrInvalidToken
}

func newImportTestRouter(svc service.ImportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{MaxImportBytes: 5 * 1024 * 1024}
	handler := NewImportHandler(cfg, svc)

	router := gin.New()
	auth := middleware.AuthMiddleware(&stubAuthService{userID: "user-1"})
	router.POST("/api/leads/import", auth, handler.Import)
	router.GET("/api/leads/import/template", auth, handler.Template)
	return router
}

func multipartFile(t *testing.T, fieldName, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestImportEndpoint_RequiresAuth(t *testing.T) {
	router := newImportTestRouter(new(mockImportService))

	body, contentType := multipartFile(t, "file", "leads.csv", "name\nAlice\n")
	req := httptest.NewRequest(http.MethodPost, "/api/leads/import", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error": "Unauthorized"}`, rec.Body.String())
}

func TestImportEndpoint_NoFile(t *testing.T) {
	router := newImportTestRouter(new(mockImportService))

	req := httptest.NewRequest(http.MethodPost, "/api/leads/import", nil)
	req.Header.Set("Authorization", "Bearer valid-token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "No file uploaded"}`, rec.Body.String())
}

func TestImportEndpoint_RejectsUnsupportedExtension(t *testing.T) {
	svc := new(mockImportService)
	router := newImportTestRouter(svc)

	body, contentType := multipartFile(t, "file", "leads.txt", "name\nAlice\n")
	req := httptest.NewRequest(http.MethodPost, "/api/leads/import", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer valid-token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Import", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestImportEndpoint_EmptyFile(t *testing.T) {
	svc := new(mockImportService)
	router := newImportTestRouter(svc)

	svc.On("Import", mock.Anything, mock.Anything, "leads.csv", "user-1").
		Return(nil, service.ErrEmptyFile)

	body, contentType := multipartFile(t, "file", "leads.csv", "name\n")
	req := httptest.NewRequest(http.MethodPost, "/api/leads/import", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer valid-token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "File is empty or invalid"}`, rec.Body.String())
}

func TestImportEndpoint_Success(t *testing.T) {
	svc := new(mockImportService)
	router := newImportTestRouter(svc)

	svc.On("Import", mock.Anything, []byte("name\nAlice\n"), "leads.csv", "user-1").
		Return(&models.ImportResult{
			Total:    1,
			Imported: 1,
			Errors:   []models.ImportError{},
		}, nil)

	body, contentType := multipartFile(t, "file", "leads.csv", "name\nAlice\n")
	req := httptest.NewRequest(http.MethodPost, "/api/leads/import", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer valid-token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result models.ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)
	svc.AssertExpectations(t)
}

func TestImportEndpoint_TooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{MaxImportBytes: 16}
	handler := NewImportHandler(cfg, new(mockImportService))

	router := gin.New()
	router.POST("/api/leads/import", middleware.AuthMiddleware(&stubAuthService{userID: "user-1"}), handler.Import)

	body, contentType := multipartFile(t, "file", "leads.csv", "name,email\nAlice,alice@x.com\n")
	req := httptest.NewRequest(http.MethodPost, "/api/leads/import", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer valid-token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTemplateEndpoint(t *testing.T) {
	svc := new(mockImportService)
	router := newImportTestRouter(svc)

	svc.On("Template").Return([]byte("workbook-bytes"), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/leads/import/template", nil)
	req.Header.Set("Authorization", "Bearer valid-token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "leads_template.xlsx")
	assert.Equal(t, "workbook-bytes", rec.Body.String())
}
