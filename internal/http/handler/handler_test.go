package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rosapi/internal/model"
	"rosapi/internal/service"
	serviceMocks "rosapi/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testRef = service.RepositoryRef{Owner: "kartverket", Name: "ros", AccessToken: "gh-token"}

func newRequest(method, target, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(AccessTokenHeader, "gh-token")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})

	t.Run("no database", func(t *testing.T) {
		app := fiber.New()
		app.Get("/health", HealthCheck(nil))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProcessingStatusCode(t *testing.T) {
	tests := []struct {
		status model.ProcessingStatus
		want   int
	}{
		{model.ProcessingCreatedROS, http.StatusOK},
		{model.ProcessingUpdatedROS, http.StatusOK},
		{model.ProcessingROSNotValid, http.StatusInternalServerError},
		{model.ProcessingEncryptionFailed, http.StatusInternalServerError},
		{model.ProcessingCouldNotCreateBranch, http.StatusInternalServerError},
		{model.ProcessingErrorWhenUpdatingROS, http.StatusInternalServerError},
		{model.ProcessingStatus("SomethingNew"), http.StatusInternalServerError},
		{model.ProcessingStatus(""), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, processingStatusCode(tt.status))
			// pure: the same input always maps the same way
			assert.Equal(t, tt.want, processingStatusCode(tt.status))
		})
	}
}

func TestSimpleStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusOK, simpleStatusCode(model.SimpleSuccess))
	assert.Equal(t, http.StatusInternalServerError, simpleStatusCode(model.SimpleFailure))
	assert.Equal(t, http.StatusInternalServerError, simpleStatusCode(model.SimpleStatus("")))
}

func TestSuccessfulResults(t *testing.T) {
	in := []model.ROSResult{
		{ID: "ros-c", Status: model.ContentSuccess},
		{ID: "ros-a", Status: model.ContentFileNotFound},
		{ID: "ros-b", Status: model.ContentSuccess},
		{ID: "ros-d", Status: model.ContentDecryptionFailed},
	}

	got := successfulResults(in)

	assert.Equal(t, []model.ROSResult{
		{ID: "ros-c", Status: model.ContentSuccess},
		{ID: "ros-b", Status: model.ContentSuccess},
	}, got)
	assert.Len(t, in, 4)
	assert.Empty(t, successfulResults(nil))
}

func TestFetchAllROSes(t *testing.T) {
	mockSvc := new(serviceMocks.MockROSService)
	app := fiber.New()
	app.Get("/api/:owner/:repo/all", FetchAllROSes(mockSvc))

	t.Run("partial success returns only successes", func(t *testing.T) {
		mockSvc.On("FetchAllROSes", mock.Anything, testRef).Return([]model.ROSResult{
			{ID: "a", Status: model.ContentSuccess, Content: "{}"},
			{ID: "b", Status: model.ContentFailure},
		}, nil).Once()

		resp, _ := app.Test(newRequest(http.MethodGet, "/api/kartverket/ros/all", ""))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got []model.ROSResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, []model.ROSResult{{ID: "a", Status: model.ContentSuccess, Content: "{}"}}, got)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no success returns full list", func(t *testing.T) {
		all := []model.ROSResult{
			{ID: "a", Status: model.ContentFileNotFound},
			{ID: "b", Status: model.ContentDecryptionFailed},
		}
		mockSvc.On("FetchAllROSes", mock.Anything, testRef).Return(all, nil).Once()

		resp, _ := app.Test(newRequest(http.MethodGet, "/api/kartverket/ros/all", ""))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var got []model.ROSResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, all, got)
	})

	t.Run("empty list", func(t *testing.T) {
		mockSvc.On("FetchAllROSes", mock.Anything, testRef).Return([]model.ROSResult{}, nil).Once()

		resp, _ := app.Test(newRequest(http.MethodGet, "/api/kartverket/ros/all", ""))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `[]`, string(body))
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/kartverket/ros/all", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "MISSING_ACCESS_TOKEN", res.Error.Code)
	})

	t.Run("service fault", func(t *testing.T) {
		mockSvc.On("FetchAllROSes", mock.Anything, testRef).Return(nil, errors.New("list branches: 401 Bad credentials")).Once()

		resp, _ := app.Test(newRequest(http.MethodGet, "/api/kartverket/ros/all", ""))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.NotContains(t, string(body), "Bad credentials")
		var res errorPayload
		require.NoError(t, json.Unmarshal(body, &res))
		assert.Equal(t, "INTERNAL_ERROR", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestCreateROS(t *testing.T) {
	mockSvc := new(serviceMocks.MockROSService)
	app := fiber.New()
	app.Post("/api/:owner/:repo", CreateROS(mockSvc))

	wrapper := &model.ROSWrapper{ROS: `{"title":"x"}`, SchemaVersion: "3"}
	payload := `{"ros":"{\"title\":\"x\"}","schemaVersion":"3"}`

	tests := []struct {
		name       string
		result     *model.ProcessROSResult
		wantStatus int
	}{
		{"created", &model.ProcessROSResult{ROSID: "ros-abcde", Status: model.ProcessingCreatedROS, StatusMessage: "New ROS created"}, http.StatusOK},
		{"updated", &model.ProcessROSResult{ROSID: "ros-abcde", Status: model.ProcessingUpdatedROS}, http.StatusOK},
		{"not valid", &model.ProcessROSResult{ROSID: "ros-abcde", Status: model.ProcessingROSNotValid, StatusMessage: "ROS is not valid"}, http.StatusInternalServerError},
		{"encryption failed", &model.ProcessROSResult{ROSID: "ros-abcde", Status: model.ProcessingEncryptionFailed}, http.StatusInternalServerError},
		{"branch failed", &model.ProcessROSResult{ROSID: "ros-abcde", Status: model.ProcessingCouldNotCreateBranch}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc.On("CreateROS", mock.Anything, testRef, wrapper).Return(tt.result, nil).Once()

			resp, _ := app.Test(newRequest(http.MethodPost, "/api/kartverket/ros", payload))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			var got model.ProcessROSResult
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Equal(t, *tt.result, got)
			mockSvc.AssertExpectations(t)
		})
	}

	t.Run("invalid body", func(t *testing.T) {
		resp, _ := app.Test(newRequest(http.MethodPost, "/api/kartverket/ros", `{"ros":`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_BODY", res.Error.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/kartverket/ros", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("service fault", func(t *testing.T) {
		mockSvc.On("CreateROS", mock.Anything, testRef, wrapper).Return(nil, context.DeadlineExceeded).Once()

		resp, _ := app.Test(newRequest(http.MethodPost, "/api/kartverket/ros", payload))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INTERNAL_ERROR", res.Error.Code)
	})
}

func TestEditROS(t *testing.T) {
	mockSvc := new(serviceMocks.MockROSService)
	app := fiber.New()
	app.Put("/api/:owner/:repo/:id", EditROS(mockSvc))

	wrapper := &model.ROSWrapper{ROS: "{}"}

	t.Run("updated", func(t *testing.T) {
		res := &model.ProcessROSResult{ROSID: "ros-abcde", Status: model.ProcessingUpdatedROS, StatusMessage: "ROS updated"}
		mockSvc.On("UpdateROS", mock.Anything, testRef, "ros-abcde", wrapper).Return(res, nil).Once()

		resp, _ := app.Test(newRequest(http.MethodPut, "/api/kartverket/ros/ros-abcde", `{"ros":"{}"}`))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("commit failed", func(t *testing.T) {
		res := &model.ProcessROSResult{ROSID: "ros-abcde", Status: model.ProcessingErrorWhenUpdatingROS, StatusMessage: "Could not commit ROS"}
		mockSvc.On("UpdateROS", mock.Anything, testRef, "ros-abcde", wrapper).Return(res, nil).Once()

		resp, _ := app.Test(newRequest(http.MethodPut, "/api/kartverket/ros/ros-abcde", `{"ros":"{}"}`))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var got model.ProcessROSResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, *res, got)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid body", func(t *testing.T) {
		resp, _ := app.Test(newRequest(http.MethodPut, "/api/kartverket/ros/ros-abcde", `[1,2]`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestFetchDraftsSentToPublication(t *testing.T) {
	mockSvc := new(serviceMocks.MockROSService)
	app := fiber.New()
	app.Get("/api/:owner/:repo/sentToPublication", FetchDraftsSentToPublication(mockSvc))

	t.Run("success", func(t *testing.T) {
		res := &model.ROSIdentifiersResult{
			IDs:    []model.ROSIdentifier{{ID: "ros-abcde", State: model.StateSentForApproval}},
			Status: model.SimpleSuccess,
		}
		mockSvc.On("FetchDraftsSentToPublication", mock.Anything, testRef).Return(res, nil).Once()

		resp, _ := app.Test(newRequest(http.MethodGet, "/api/kartverket/ros/sentToPublication", ""))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got model.ROSIdentifiersResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, *res, got)
	})

	t.Run("failure", func(t *testing.T) {
		res := &model.ROSIdentifiersResult{IDs: []model.ROSIdentifier{}, Status: model.SimpleFailure, StatusMessage: "Could not fetch pull requests"}
		mockSvc.On("FetchDraftsSentToPublication", mock.Anything, testRef).Return(res, nil).Once()

		resp, _ := app.Test(newRequest(http.MethodGet, "/api/kartverket/ros/sentToPublication", ""))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `{"rosIds":[],"status":"Failure","statusMessage":"Could not fetch pull requests"}`, string(body))
	})
}

func TestPublishROS(t *testing.T) {
	mockSvc := new(serviceMocks.MockROSService)
	app := fiber.New()
	app.Post("/api/:owner/:repo/publish/:id", PublishROS(mockSvc))

	t.Run("success", func(t *testing.T) {
		res := &model.ROSPublishedObjectResult{
			PendingPullRequest: &model.PullRequestObject{
				URL:       "https://github.com/kartverket/ros/pull/8",
				Title:     "Publish ROS ros-abcde",
				OpenedBy:  "octocat",
				CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
			},
			Status:        model.SimpleSuccess,
			StatusMessage: "ROS sent for publication",
		}
		mockSvc.On("PublishROS", mock.Anything, testRef, "ros-abcde").Return(res, nil).Once()

		resp, _ := app.Test(newRequest(http.MethodPost, "/api/kartverket/ros/publish/ros-abcde", ""))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got model.ROSPublishedObjectResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, res.PendingPullRequest.URL, got.PendingPullRequest.URL)
		assert.True(t, res.PendingPullRequest.CreatedAt.Equal(got.PendingPullRequest.CreatedAt))
		mockSvc.AssertExpectations(t)
	})

	t.Run("failure keeps body", func(t *testing.T) {
		res := &model.ROSPublishedObjectResult{Status: model.SimpleFailure, StatusMessage: "Could not create pull request"}
		mockSvc.On("PublishROS", mock.Anything, testRef, "ros-abcde").Return(res, nil).Once()

		resp, _ := app.Test(newRequest(http.MethodPost, "/api/kartverket/ros/publish/ros-abcde", ""))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `{"status":"Failure","statusMessage":"Could not create pull request"}`, string(body))
		mockSvc.AssertExpectations(t)
	})

	t.Run("service fault", func(t *testing.T) {
		mockSvc.On("PublishROS", mock.Anything, testRef, "ros-abcde").Return(nil, context.Canceled).Once()

		resp, _ := app.Test(newRequest(http.MethodPost, "/api/kartverket/ros/publish/ros-abcde", ""))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INTERNAL_ERROR", res.Error.Code)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	mockSvc := new(serviceMocks.MockROSService)
	RegisterRoutes(app, nil, mockSvc, prometheus.NewRegistry())

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})

	t.Run("metrics", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("each route reaches one service call", func(t *testing.T) {
		mockSvc.On("FetchAllROSes", mock.Anything, testRef).Return([]model.ROSResult{{ID: "a", Status: model.ContentSuccess}}, nil).Once()
		mockSvc.On("FetchDraftsSentToPublication", mock.Anything, testRef).Return(&model.ROSIdentifiersResult{Status: model.SimpleSuccess}, nil).Once()
		mockSvc.On("CreateROS", mock.Anything, testRef, mock.Anything).Return(&model.ProcessROSResult{Status: model.ProcessingCreatedROS}, nil).Once()
		mockSvc.On("UpdateROS", mock.Anything, testRef, "ros-abcde", mock.Anything).Return(&model.ProcessROSResult{Status: model.ProcessingUpdatedROS}, nil).Once()
		mockSvc.On("PublishROS", mock.Anything, testRef, "ros-abcde").Return(&model.ROSPublishedObjectResult{Status: model.SimpleSuccess}, nil).Once()

		reqs := []*http.Request{
			newRequest(http.MethodGet, "/api/kartverket/ros/all", ""),
			newRequest(http.MethodGet, "/api/kartverket/ros/sentToPublication", ""),
			newRequest(http.MethodPost, "/api/kartverket/ros", `{"ros":"{}"}`),
			newRequest(http.MethodPut, "/api/kartverket/ros/ros-abcde", `{"ros":"{}"}`),
			newRequest(http.MethodPost, "/api/kartverket/ros/publish/ros-abcde", ""),
		}
		for _, req := range reqs {
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode, req.Method+" "+req.URL.Path)
		}
		mockSvc.AssertExpectations(t)
	})
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/boom", func(c *fiber.Ctx) error {
		c.Locals("request_id", "rid-1")
		return errors.New("token ghp_secret rejected")
	})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	t.Run("plain error hides detail", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `{"request_id":"rid-1","error":{"code":"INTERNAL_ERROR","message":"internal server error"}}`, string(body))
	})

	t.Run("unmapped fiber status keeps code", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil))

		assert.Equal(t, http.StatusTeapot, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INTERNAL_ERROR", res.Error.Code)
	})
}
