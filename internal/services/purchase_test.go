package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"elearning-marketplace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockConnector is a mock implementation of Connector
type MockConnector struct {
	mock.Mock
}

func (m *MockConnector) Do(ctx context.Context, req APIRequest) (*APIResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*APIResponse), args.Error(1)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Loading(message string) string {
	args := m.Called(message)
	return args.String(0)
}

func (m *MockNotifier) Success(message string) { m.Called(message) }
func (m *MockNotifier) Error(message string)   { m.Called(message) }
func (m *MockNotifier) Dismiss(id string)      { m.Called(id) }

type hookRecorder struct {
	paths   []string
	actions []Action
}

func (h *hookRecorder) navigate(path string)    { h.paths = append(h.paths, path) }
func (h *hookRecorder) dispatch(action Action) { h.actions = append(h.actions, action) }

func purchaseRequest() PurchaseRequest {
	return PurchaseRequest{
		Token:       "jwt-token",
		Courses:     []int64{3, 4},
		UserDetails: models.UserDetails{ID: 5, FirstName: "Asha", Email: "asha@example.com"},
	}
}

func expectedCall() APIRequest {
	return APIRequest{
		Method:  http.MethodPost,
		URL:     CoursePaymentAPI,
		Body:    models.PurchaseRequestBody{Courses: []int64{3, 4}},
		Headers: map[string]string{"Authorization": "Bearer jwt-token"},
	}
}

func jsonResponse(body string) *APIResponse {
	return &APIResponse{StatusCode: http.StatusOK, Body: []byte(body)}
}

func TestPurchaseService_BuyCourse_Success(t *testing.T) {
	connector := new(MockConnector)
	notifier := new(MockNotifier)
	hooks := &hookRecorder{}

	connector.On("Do", mock.Anything, expectedCall()).
		Return(jsonResponse(`{"success":true,"message":"Student enrolled successfully"}`), nil)
	notifier.On("Loading", "Loading...").Return("toast-1")
	notifier.On("Success", "Enrollment Successful, you are added to the course").Return()
	notifier.On("Dismiss", "toast-1").Return()

	service := NewPurchaseService(connector, notifier)
	result := service.BuyCourse(context.Background(), purchaseRequest(), hooks.navigate, hooks.dispatch)

	assert.True(t, result.Success)
	assert.NoError(t, result.Err)
	assert.Equal(t, []string{"/dashboard/enrolled-courses"}, hooks.paths)
	assert.Equal(t, []Action{ResetCart}, hooks.actions)
	connector.AssertExpectations(t)
	notifier.AssertExpectations(t)
	notifier.AssertNotCalled(t, "Error", mock.Anything)
}

func TestPurchaseService_BuyCourse_Failures(t *testing.T) {
	tests := []struct {
		name      string
		resp      *APIResponse
		err       error
		wantCause string
	}{
		{
			name:      "server reports failure",
			resp:      jsonResponse(`{"success":false,"message":"Course not found"}`),
			wantCause: "Course not found",
		},
		{
			name:      "network error",
			err:       errors.New("dial tcp: connection refused"),
			wantCause: "dial tcp: connection refused",
		},
		{
			name:      "status error",
			resp:      &APIResponse{StatusCode: http.StatusConflict},
			err:       &StatusError{StatusCode: http.StatusConflict, Message: "student is already enrolled"},
			wantCause: "API error 409: student is already enrolled",
		},
		{
			name:      "undecodable body",
			resp:      jsonResponse(`<html>`),
			wantCause: "failed to decode response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			connector := new(MockConnector)
			notifier := new(MockNotifier)
			hooks := &hookRecorder{}

			connector.On("Do", mock.Anything, mock.AnythingOfType("services.APIRequest")).Return(tt.resp, tt.err)
			notifier.On("Loading", "Loading...").Return("toast-1")
			notifier.On("Error", "Could not enroll in course").Return()
			notifier.On("Dismiss", "toast-1").Return()

			service := NewPurchaseService(connector, notifier)

			var result PurchaseResult
			assert.NotPanics(t, func() {
				result = service.BuyCourse(context.Background(), purchaseRequest(), hooks.navigate, hooks.dispatch)
			})

			assert.False(t, result.Success)
			assert.Equal(t, "Could not enroll in course", result.Message)
			if assert.Error(t, result.Err) {
				assert.Contains(t, result.Err.Error(), tt.wantCause)
			}
			assert.Empty(t, hooks.paths)
			assert.Empty(t, hooks.actions)
			notifier.AssertExpectations(t)
			notifier.AssertNotCalled(t, "Success", mock.Anything)
		})
	}
}

func TestPurchaseService_BuyCourse_NilHooks(t *testing.T) {
	connector := new(MockConnector)
	connector.On("Do", mock.Anything, mock.Anything).
		Return(jsonResponse(`{"success":true,"message":"ok"}`), nil)

	service := NewPurchaseService(connector, nil)

	assert.NotPanics(t, func() {
		result := service.BuyCourse(context.Background(), purchaseRequest(), nil, nil)
		assert.True(t, result.Success)
	})
}
