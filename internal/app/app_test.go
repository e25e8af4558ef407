package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskManager/internal/app"
	"taskManager/internal/config"
	"taskManager/internal/handlers/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// APITestSuite гоняет запросы через весь роутер поверх хранилища в памяти
type APITestSuite struct {
	suite.Suite
	app     *app.App
	handler http.Handler
	admin   string
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            "0",
			ShutdownTimeout: time.Second,
			CORSOrigins:     []string{"*"},
		},
		Repository: config.RepositoryConfig{Type: config.RepositoryInMemory},
		Auth: config.AuthConfig{
			Secret:     "test-secret",
			TokenTTL:   time.Hour,
			BcryptCost: 4,
		},
		Seed: config.SeedConfig{Enabled: true},
	}
}

func (s *APITestSuite) SetupTest() {
	s.app = app.New(testConfig())
	s.Require().NoError(s.app.Init(context.Background()))
	s.handler = s.app.Handler()
	s.admin = s.login("hexlet@example.com", "qwerty")
}

func (s *APITestSuite) TearDownTest() {
	s.NoError(s.app.Shutdown())
}

func (s *APITestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *APITestSuite) login(email, password string) string {
	rec := s.do(http.MethodPost, "/api/login", "", map[string]string{"username": email, "password": password})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	return rec.Body.String()
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errorBody struct {
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

func (s *APITestSuite) createUser(email, password string) dto.UserResponse {
	rec := s.do(http.MethodPost, "/api/users", s.admin, map[string]string{
		"firstName": "Jane", "lastName": "Doe", "email": email, "password": password,
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return decode[dto.UserResponse](s.T(), rec)
}

func (s *APITestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "task-manager")
}

func (s *APITestSuite) TestAuth() {
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/users", "", nil).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/tasks", "garbage", nil).Code)

	rec := s.do(http.MethodPost, "/api/login", "", map[string]string{"username": "hexlet@example.com", "password": "wrong"})
	s.Equal(http.StatusUnauthorized, rec.Code)

	// статусы читаются без токена, а меняются только с ним
	rec = s.do(http.MethodGet, "/api/task_statuses", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("5", rec.Header().Get("X-Total-Count"))
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/api/task_statuses", "", map[string]string{"name": "X", "slug": "x"}).Code)
}

func (s *APITestSuite) TestUsers_SelfOnly() {
	jane := s.createUser("jane@example.com", "secret")
	s.NotContains(s.do(http.MethodGet, fmt.Sprintf("/api/users/%d", jane.ID), s.admin, nil).Body.String(), "password")

	janeToken := s.login("jane@example.com", "secret")

	// чужой пользователь: FORBIDDEN даже с невалидным телом
	rec := s.do(http.MethodPut, "/api/users/1", janeToken, map[string]any{"email": "not-an-email"})
	s.Equal(http.StatusForbidden, rec.Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodDelete, "/api/users/1", janeToken, nil).Code)

	rec = s.do(http.MethodPut, fmt.Sprintf("/api/users/%d", jane.ID), janeToken, map[string]any{"firstName": "Janet"})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[dto.UserResponse](s.T(), rec)
	s.Equal("Janet", updated.FirstName)
	s.Equal("Doe", updated.LastName)
	s.Equal("jane@example.com", updated.Email)

	rec = s.do(http.MethodPut, fmt.Sprintf("/api/users/%d", jane.ID), janeToken, map[string]any{"email": "hexlet@example.com"})
	s.Equal(http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPut, fmt.Sprintf("/api/users/%d", jane.ID), janeToken, map[string]any{"password": nil})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("VALIDATION_ERROR", decode[errorBody](s.T(), rec).Error)

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", jane.ID), janeToken, nil).Code)
}

func (s *APITestSuite) TestUsers_Validation() {
	rec := s.do(http.MethodPost, "/api/users", s.admin, map[string]string{"email": "bad", "password": "secret"})
	s.Equal(http.StatusBadRequest, rec.Code)
	body := decode[errorBody](s.T(), rec)
	s.Equal("VALIDATION_ERROR", body.Error)
	s.Equal("email", body.Details["field"])

	rec = s.do(http.MethodPost, "/api/users", s.admin, map[string]string{"email": "ok@example.com", "password": "12"})
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/users", s.admin, `{"email":`)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/users/abc", s.admin, nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/users/999", s.admin, nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APITestSuite) TestLabels() {
	rec := s.do(http.MethodPost, "/api/labels", s.admin, map[string]string{"name": "bug"})
	s.Require().Equal(http.StatusConflict, rec.Code)
	s.Equal("CONFLICT", decode[errorBody](s.T(), rec).Error)

	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/labels", s.admin, map[string]string{"name": "ab"}).Code)

	rec = s.do(http.MethodPost, "/api/labels", s.admin, map[string]string{"name": "chore"})
	s.Require().Equal(http.StatusCreated, rec.Code)
	chore := decode[dto.LabelResponse](s.T(), rec)
	s.Equal(time.Now().Format(dto.DateLayout), chore.CreatedAt)

	rec = s.do(http.MethodGet, "/api/labels", s.admin, nil)
	s.Equal("3", rec.Header().Get("X-Total-Count"))

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, fmt.Sprintf("/api/labels/%d", chore.ID), s.admin, nil).Code)
	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, fmt.Sprintf("/api/labels/%d", chore.ID), s.admin, nil).Code)
}

func (s *APITestSuite) TestTasks() {
	rec := s.do(http.MethodPost, "/api/tasks", s.admin, map[string]any{
		"title": "Fix login bug", "status": "draft", "assignee_id": 1, "taskLabelIds": []int64{2, 1, 2},
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[dto.TaskResponse](s.T(), rec)
	s.Equal("draft", created.Status)
	s.Equal([]int64{1, 2}, created.TaskLabelIDs)
	s.Require().NotNil(created.AssigneeID)
	s.Equal(int64(1), *created.AssigneeID)

	rec = s.do(http.MethodPost, "/api/tasks", s.admin, map[string]any{"title": "Write notes", "status": "published"})
	s.Require().Equal(http.StatusCreated, rec.Code)
	notes := decode[dto.TaskResponse](s.T(), rec)
	s.Nil(notes.AssigneeID)
	s.Empty(notes.TaskLabelIDs)

	rec = s.do(http.MethodPost, "/api/tasks", s.admin, map[string]any{"title": "x", "status": "nope"})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("REFERENCE_NOT_FOUND", decode[errorBody](s.T(), rec).Error)

	// ненайденная метка отменяет всё обновление
	rec = s.do(http.MethodPut, fmt.Sprintf("/api/tasks/%d", created.ID), s.admin, map[string]any{
		"title": "Renamed", "taskLabelIds": []int64{1, 99},
	})
	s.Equal(http.StatusBadRequest, rec.Code)
	rec = s.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d", created.ID), s.admin, nil)
	s.Equal("Fix login bug", decode[dto.TaskResponse](s.T(), rec).Title)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "all", query: "", want: 2},
		{name: "title", query: "?titleCont=Fix", want: 1},
		{name: "title case sensitive", query: "?titleCont=fix", want: 0},
		{name: "assignee", query: "?assigneeId=1", want: 1},
		{name: "status", query: "?status=published", want: 1},
		{name: "label", query: "?labelId=2", want: 1},
		{name: "combined", query: "?status=draft&labelId=1&titleCont=login", want: 1},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(http.MethodGet, "/api/tasks"+tt.query, s.admin, nil)
			s.Require().Equal(http.StatusOK, rec.Code)
			s.Equal(fmt.Sprint(tt.want), rec.Header().Get("X-Total-Count"))
			s.Len(decode[[]dto.TaskResponse](s.T(), rec), tt.want)
		})
	}
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/tasks?assigneeId=abc", s.admin, nil).Code)

	// null снимает исполнителя и метки, непереданные поля не меняются
	rec = s.do(http.MethodPut, fmt.Sprintf("/api/tasks/%d", created.ID), s.admin, `{"assignee_id": null, "taskLabelIds": null}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	cleared := decode[dto.TaskResponse](s.T(), rec)
	s.Nil(cleared.AssigneeID)
	s.Empty(cleared.TaskLabelIDs)
	s.Equal("Fix login bug", cleared.Title)
	s.Equal("draft", cleared.Status)
}

func (s *APITestSuite) TestStatuses_InUse() {
	rec := s.do(http.MethodPost, "/api/tasks", s.admin, map[string]any{"title": "Task", "status": "draft", "assignee_id": 1})
	s.Require().Equal(http.StatusCreated, rec.Code)
	task := decode[dto.TaskResponse](s.T(), rec)

	s.Equal(http.StatusConflict, s.do(http.MethodDelete, "/api/task_statuses/1", s.admin, nil).Code)
	rec = s.do(http.MethodDelete, "/api/users/1", s.admin, nil)
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal("in_use", decode[errorBody](s.T(), rec).Details["reason"])

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), s.admin, nil).Code)
	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/task_statuses/1", s.admin, nil).Code)
	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/task_statuses/1", s.admin, nil).Code)

	rec = s.do(http.MethodPost, "/api/task_statuses", s.admin, map[string]string{"name": "Draft", "slug": "draft"})
	s.Equal(http.StatusCreated, rec.Code)
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

// TestInit_UnknownRepository тестирует ошибку неизвестного хранилища
func TestInit_UnknownRepository(t *testing.T) {
	cfg := testConfig()
	cfg.Repository.Type = "redis"

	application := app.New(cfg)
	err := application.Init(context.Background())
	assert.Error(t, err)
	assert.NoError(t, application.Shutdown())
}
