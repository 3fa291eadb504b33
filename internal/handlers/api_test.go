package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"elearning-marketplace/internal/auth"
	"elearning-marketplace/internal/middleware"
	"elearning-marketplace/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAuthService is a mock implementation of AuthServiceInterface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, req *models.UserCreateRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginData, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginData), args.Error(1)
}

// MockCourseService is a mock implementation of CourseServiceInterface
type MockCourseService struct {
	mock.Mock
}

func (m *MockCourseService) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Course), args.Error(1)
}

func (m *MockCourseService) GetCourseDetails(ctx context.Context, courseID int64) (*models.Course, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockCourseService) GetCourseReviews(ctx context.Context, courseID int64) ([]*models.RatingAndReview, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RatingAndReview), args.Error(1)
}

func (m *MockCourseService) GetAllReviews(ctx context.Context, limit int) ([]*models.RatingAndReview, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RatingAndReview), args.Error(1)
}

func (m *MockCourseService) GetEnrolledCourses(ctx context.Context, userID int64) ([]*models.Course, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Course), args.Error(1)
}

// MockEnrollmentService is a mock implementation of EnrollmentServiceInterface
type MockEnrollmentService struct {
	mock.Mock
}

func (m *MockEnrollmentService) EnrollStudent(ctx context.Context, userID int64, courseIDs []int64) error {
	args := m.Called(ctx, userID, courseIDs)
	return args.Error(0)
}

type apiFixture struct {
	router      chi.Router
	tokens      *auth.TokenManager
	auth        *MockAuthService
	courses     *MockCourseService
	enrollments *MockEnrollmentService
}

func newAPIFixture() *apiFixture {
	f := &apiFixture{
		tokens:      auth.NewTokenManager("handler-secret", time.Hour),
		auth:        new(MockAuthService),
		courses:     new(MockCourseService),
		enrollments: new(MockEnrollmentService),
	}

	f.router = NewAPIRouter(APIRouterConfig{
		Auth:           NewAuthHandler(f.auth, time.Hour, false),
		Course:         NewCourseHandler(f.courses),
		Payment:        NewPaymentHandler(f.enrollments),
		Profile:        NewProfileHandler(f.courses),
		AuthMiddleware: middleware.NewAuthMiddleware(f.tokens),
		CORS:           middleware.DefaultCORSConfig([]string{"http://localhost:3000"}),
	})
	return f
}

func (f *apiFixture) token(t *testing.T, userID int64, accountType models.AccountType) string {
	t.Helper()
	token, err := f.tokens.Generate(&models.User{ID: userID, Email: "user@example.com", AccountType: accountType})
	require.NoError(t, err)
	return token
}

func (f *apiFixture) do(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var envelope models.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	return envelope
}

func TestPaymentHandler_CapturePayment(t *testing.T) {
	tests := []struct {
		name        string
		enrollErr   error
		wantStatus  int
		wantMessage string
	}{
		{"enrolled", nil, http.StatusOK, "Student enrolled successfully"},
		{"no courses", models.ErrNoCourses, http.StatusBadRequest, "please provide course ids"},
		{"missing course", fmt.Errorf("course 9: %w", models.ErrCourseNotFound), http.StatusNotFound, "course 9: course not found"},
		{"already enrolled", fmt.Errorf("course 3: %w", models.ErrAlreadyEnrolled), http.StatusConflict, "course 3: student is already enrolled"},
		{"database failure", errors.New("pq: connection refused"), http.StatusInternalServerError, "Something went wrong. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAPIFixture()
			f.enrollments.On("EnrollStudent", mock.Anything, int64(5), []int64{3, 9}).Return(tt.enrollErr)

			rr := f.do(http.MethodPost, "/api/v1/payment/capturePayment", `{"courses":[3,9]}`, f.token(t, 5, models.AccountStudent))

			assert.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			assert.Equal(t, tt.enrollErr == nil, envelope.Success)
			assert.Equal(t, tt.wantMessage, envelope.Message)
			f.enrollments.AssertExpectations(t)
		})
	}
}

func TestPaymentHandler_CapturePayment_Auth(t *testing.T) {
	f := newAPIFixture()

	rr := f.do(http.MethodPost, "/api/v1/payment/capturePayment", `{"courses":[3]}`, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = f.do(http.MethodPost, "/api/v1/payment/capturePayment", `{"courses":[3]}`, f.token(t, 5, models.AccountInstructor))
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.False(t, decodeEnvelope(t, rr).Success)

	f.enrollments.AssertNotCalled(t, "EnrollStudent", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentHandler_CapturePayment_MalformedBody(t *testing.T) {
	f := newAPIFixture()

	rr := f.do(http.MethodPost, "/api/v1/payment/capturePayment", `{"courses":`, f.token(t, 5, models.AccountStudent))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	f.enrollments.AssertNotCalled(t, "EnrollStudent", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthHandler_Login(t *testing.T) {
	f := newAPIFixture()
	user := &models.User{ID: 5, Email: "asha@example.com", AccountType: models.AccountStudent}

	f.auth.On("Login", mock.Anything, &models.LoginRequest{Email: "asha@example.com", Password: "SecurePassword123!"}).
		Return(&models.LoginData{Token: "signed-token", User: user}, nil)
	f.auth.On("Login", mock.Anything, &models.LoginRequest{Email: "asha@example.com", Password: "wrong"}).
		Return(nil, models.ErrInvalidCredentials)

	rr := f.do(http.MethodPost, "/api/v1/auth/login", `{"email":"asha@example.com","password":"SecurePassword123!"}`, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Success bool             `json:"success"`
		Data    models.LoginData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "signed-token", body.Data.Token)
	assert.NotContains(t, rr.Body.String(), "password")

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.TokenCookieName, cookies[0].Name)
	assert.Equal(t, "signed-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	rr = f.do(http.MethodPost, "/api/v1/auth/login", `{"email":"asha@example.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Empty(t, rr.Result().Cookies())
}

func TestAuthHandler_Signup(t *testing.T) {
	f := newAPIFixture()

	f.auth.On("Signup", mock.Anything, mock.MatchedBy(func(req *models.UserCreateRequest) bool {
		return req.Email == "new@example.com"
	})).Return(&models.User{ID: 8, Email: "new@example.com"}, nil)
	f.auth.On("Signup", mock.Anything, mock.MatchedBy(func(req *models.UserCreateRequest) bool {
		return req.Email == "taken@example.com"
	})).Return(nil, fmt.Errorf("user with email taken@example.com: %w", models.ErrDuplicateEntry))

	rr := f.do(http.MethodPost, "/api/v1/auth/signup", `{"first_name":"New","last_name":"User","email":"new@example.com","password":"SecurePassword123!"}`, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = f.do(http.MethodPost, "/api/v1/auth/signup", `{"first_name":"Old","last_name":"User","email":"taken@example.com","password":"SecurePassword123!"}`, "")
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = f.do(http.MethodPost, "/api/v1/auth/signup", `not json`, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCourseHandler_Routes(t *testing.T) {
	f := newAPIFixture()

	f.courses.On("GetAllCourses", mock.Anything).Return([]*models.Course{{ID: 1, CourseName: "Go"}}, nil)
	f.courses.On("GetCourseDetails", mock.Anything, int64(1)).Return(&models.Course{ID: 1, AverageRating: 4.75}, nil)
	f.courses.On("GetCourseDetails", mock.Anything, int64(404)).Return(nil, models.ErrCourseNotFound)
	f.courses.On("GetCourseReviews", mock.Anything, int64(1)).Return([]*models.RatingAndReview{{ID: 11, Rating: 5}}, nil)
	f.courses.On("GetAllReviews", mock.Anything, 10).Return([]*models.RatingAndReview{}, nil)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"all courses", "/api/v1/course/getAllCourses", http.StatusOK},
		{"details", "/api/v1/course/1", http.StatusOK},
		{"unknown course", "/api/v1/course/404", http.StatusNotFound},
		{"bad id", "/api/v1/course/abc", http.StatusBadRequest},
		{"course reviews", "/api/v1/course/1/reviews", http.StatusOK},
		{"all reviews", "/api/v1/course/getReviews?limit=10", http.StatusOK},
		{"bad limit", "/api/v1/course/getReviews?limit=-1", http.StatusBadRequest},
		{"unknown route", "/api/v1/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := f.do(http.MethodGet, tt.path, "", "")
			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		})
	}
	f.courses.AssertExpectations(t)
}

func TestProfileHandler_GetEnrolledCourses(t *testing.T) {
	f := newAPIFixture()
	f.courses.On("GetEnrolledCourses", mock.Anything, int64(5)).Return([]*models.Course{{ID: 3}}, nil)

	rr := f.do(http.MethodGet, "/api/v1/profile/getEnrolledCourses", "", f.token(t, 5, models.AccountInstructor))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decodeEnvelope(t, rr).Success)

	rr = f.do(http.MethodGet, "/api/v1/profile/getEnrolledCourses", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAPIRouter_HealthAndRequestID(t *testing.T) {
	f := newAPIFixture()

	rr := f.do(http.MethodGet, "/api/v1/health", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","service":"api"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{models.ErrNoCourses, http.StatusBadRequest},
		{fmt.Errorf("%w: bad", models.ErrInvalidInput), http.StatusBadRequest},
		{models.ErrInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("course 1: %w", models.ErrCourseNotFound), http.StatusNotFound},
		{models.ErrAlreadyEnrolled, http.StatusConflict},
		{models.ErrCourseInCart, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusForError(tt.err), tt.err.Error())
	}
}
