package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	contentRepo "sitecms/database/repository/content"
	userRepo "sitecms/database/repository/user"
	"sitecms/handlers"
	"sitecms/middleware"
	"sitecms/models"
	"sitecms/services/content"
	"sitecms/services/storage"
	"sitecms/services/user"
	"sitecms/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	router *gin.Engine
	repos  map[string]*contentRepo.MemoryContentRepo
	media  *storage.MemoryStore
	users  *user.DefaultUserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zaptest.NewLogger(t)
	media := storage.NewMemoryStore()
	f := &fixture{repos: map[string]*contentRepo.MemoryContentRepo{}, media: media}

	svc := func(res models.Resource) *content.DefaultContentService {
		repo := contentRepo.NewMemoryContentRepo()
		f.repos[res.Collection] = repo
		return content.NewContentService(res, repo, media, nil, logger)
	}
	services := svc(models.ServiceResource)
	banners := svc(models.BannerResource)
	faqs := svc(models.FAQResource)
	galleries := svc(models.GalleryResource)

	f.users = user.NewUserService(userRepo.NewMemoryUserRepo(), utils.NewTokenIssuer("secret", 2400*time.Hour))

	hb := &handlers.HandlerBundle{
		Services:  handlers.NewContentHandler(services, logger),
		Banners:   handlers.NewContentHandler(banners, logger),
		FAQs:      handlers.NewContentHandler(faqs, logger),
		Galleries: handlers.NewContentHandler(galleries, logger),
		Dashboard: &handlers.DashboardHandler{Services: services, Banners: banners, FAQs: faqs, Galleries: galleries, Logger: logger},
		Auth:      &handlers.AuthHandler{UserService: f.users, Logger: logger},
		ImageUpload: func(folder string) gin.HandlerFunc {
			return middleware.ImageUpload(media, nil, middleware.UploadOptions{Field: "image", MaxBytes: 5 << 20, Folder: "site/" + folder}, logger)
		},
	}

	reg := prometheus.NewRegistry()
	utils.RegisterCollectors(reg)

	f.router = gin.New()
	RegisterRoutes(f.router, hb, []string{"*"}, reg)
	return f
}

type envelope struct {
	Status  int             `json:"status"`
	Result  json.RawMessage `json:"result"`
	Message string          `json:"message"`
}

func (f *fixture) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		require.Equal(t, w.Code, env.Status)
	}
	return w, env
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func imageRequest(t *testing.T, path string, size int, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	data := make([]byte, size)
	copy(data, "\x89PNG\r\n\x1a\n")
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestFAQCreateThenList(t *testing.T) {
	f := newFixture(t)

	w, env := f.do(t, jsonRequest(http.MethodPost, "/api/faqs", `{"question":"Q","answer":"A"}`))
	require.Equal(t, http.StatusCreated, w.Code)
	var ins models.InsertResult
	require.NoError(t, json.Unmarshal(env.Result, &ins))
	require.True(t, ins.Acknowledged)
	require.NotEmpty(t, ins.InsertedID)

	w, env = f.do(t, httptest.NewRequest(http.MethodGet, "/api/faqs", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var docs []map[string]any
	require.NoError(t, json.Unmarshal(env.Result, &docs))
	require.Len(t, docs, 1)
	require.Equal(t, "Q", docs[0]["question"])
	require.Equal(t, "A", docs[0]["answer"])
	require.NotEmpty(t, docs[0]["createdAt"])
	require.Equal(t, ins.InsertedID, docs[0]["_id"])
}

func TestListEmptyCollectionReturnsArray(t *testing.T) {
	f := newFixture(t)
	_, env := f.do(t, httptest.NewRequest(http.MethodGet, "/api/banners", nil))
	require.JSONEq(t, `[]`, string(env.Result))
}

func TestServiceCreateWithImageAndGet(t *testing.T) {
	f := newFixture(t)

	w, env := f.do(t, imageRequest(t, "/api/services", 2048, map[string]string{"title": "Cleaning", "price": "10"}))
	require.Equal(t, http.StatusCreated, w.Code)
	var ins models.InsertResult
	require.NoError(t, json.Unmarshal(env.Result, &ins))

	w, env = f.do(t, httptest.NewRequest(http.MethodGet, "/api/services/"+ins.InsertedID, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(env.Result, &doc))
	require.Equal(t, "Cleaning", doc["title"])
	image, ok := doc["image"].(string)
	require.True(t, ok)
	require.NotEmpty(t, image)
	require.Equal(t, 1, f.media.Len())
}

func TestServiceCreateRejectsOversizedImage(t *testing.T) {
	f := newFixture(t)

	w, env := f.do(t, imageRequest(t, "/api/services", 6*1024*1024, map[string]string{"title": "Big"}))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "File too large. Maximum 5MB allowed.", env.Message)

	_, env = f.do(t, httptest.NewRequest(http.MethodGet, "/api/services", nil))
	require.JSONEq(t, `[]`, string(env.Result))
	require.Zero(t, f.media.Len())
}

func TestImageCollectionsRequireImage(t *testing.T) {
	f := newFixture(t)
	for _, path := range []string{"/api/services", "/api/banners", "/api/galleries"} {
		w, env := f.do(t, jsonRequest(http.MethodPost, path, `{"title":"x"}`))
		require.Equal(t, http.StatusBadRequest, w.Code, path)
		require.Equal(t, "Please upload an image", env.Message)
	}
}

func TestCreateCompensatesWhenInsertFails(t *testing.T) {
	f := newFixture(t)
	f.repos["galleries"].InsertErr = errors.New("store unavailable")

	w, env := f.do(t, imageRequest(t, "/api/galleries", 512, nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, env.Message, "store unavailable")
	require.Zero(t, f.media.Len())
	require.Len(t, f.media.Deleted, 1)
}

func TestServiceGetByID(t *testing.T) {
	f := newFixture(t)

	w, env := f.do(t, httptest.NewRequest(http.MethodGet, "/api/services/not-an-id", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid service id", env.Message)

	w, env = f.do(t, httptest.NewRequest(http.MethodGet, "/api/services/"+primitive.NewObjectID().Hex(), nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Service not found", env.Message)
}

func TestGetByIDOnlyOnServices(t *testing.T) {
	f := newFixture(t)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/banners/"+primitive.NewObjectID().Hex(), nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteIsUnconditional(t *testing.T) {
	f := newFixture(t)

	_, env := f.do(t, jsonRequest(http.MethodPost, "/api/faqs", `{"question":"Q"}`))
	var ins models.InsertResult
	require.NoError(t, json.Unmarshal(env.Result, &ins))

	for _, want := range []int64{1, 0} {
		w, env := f.do(t, httptest.NewRequest(http.MethodDelete, "/api/faqs/"+ins.InsertedID, nil))
		require.Equal(t, http.StatusOK, w.Code)
		var del models.DeleteResult
		require.NoError(t, json.Unmarshal(env.Result, &del))
		require.Equal(t, want, del.DeletedCount)
	}

	w, _ := f.do(t, httptest.NewRequest(http.MethodDelete, "/api/banners/xyz", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardStats(t *testing.T) {
	f := newFixture(t)
	f.do(t, jsonRequest(http.MethodPost, "/api/faqs", `{"question":"1"}`))
	f.do(t, jsonRequest(http.MethodPost, "/api/faqs", `{"question":"2"}`))
	f.do(t, imageRequest(t, "/api/galleries", 256, nil))

	w, env := f.do(t, httptest.NewRequest(http.MethodGet, "/api/dashboard-stats", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var stats models.DashboardStats
	require.NoError(t, json.Unmarshal(env.Result, &stats))
	require.Equal(t, models.DashboardStats{Services: 0, Banners: 0, FAQs: 2, Galleries: 1}, stats)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	_, err := f.users.EnsureAdmin(context.Background(), "admin@example.com", "secret-pw")
	require.NoError(t, err)

	w, env := f.do(t, jsonRequest(http.MethodPost, "/api/login", `{"email":"who@example.com","password":"secret-pw"}`))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Invalid email address", env.Message)

	w, env = f.do(t, jsonRequest(http.MethodPost, "/api/login", `{"email":"admin@example.com","password":"nope"}`))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Invalid password", env.Message)

	w, _ = f.do(t, jsonRequest(http.MethodPost, "/api/login", `{"email":"admin@example.com"}`))
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, env = f.do(t, jsonRequest(http.MethodPost, "/api/login", `{"email":"admin@example.com","password":"secret-pw"}`))
	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Result, &res))
	require.Equal(t, "admin@example.com", res.User["email"])
	require.NotContains(t, res.User, "password")
	require.NotEmpty(t, res.Token)
}

func TestRootAndMetrics(t *testing.T) {
	f := newFixture(t)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "running")

	f.do(t, imageRequest(t, "/api/banners", 128, nil))
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "sitecms_uploads_total")
}

func TestHealthReportsDependencyStatus(t *testing.T) {
	down := errors.New("connection refused")
	monitor := utils.NewHealthMonitor(map[string]utils.HealthCheck{
		"mongo": func(context.Context) error { return nil },
		"redis": func(context.Context) error { return down },
	})
	monitor.Check(context.Background())

	r := gin.New()
	RegisterHealthRoutes(r, &handlers.HandlerBundle{Health: monitor}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var env struct {
		Result utils.HealthStatus `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.False(t, env.Result.Healthy)
	require.Equal(t, map[string]bool{"mongo": true, "redis": false}, env.Result.Services)
}
