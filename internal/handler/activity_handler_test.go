package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mergington-api/internal/domain"
	"mergington-api/internal/registry"
	"mergington-api/internal/service"
	"mergington-api/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	log, err := logger.New("error")
	require.NoError(t, err)

	svc := service.NewActivityService(registry.NewStore(), nil, log.Logger)
	h := NewActivityHandler(svc, log)

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func doRequest(t *testing.T, router *chi.Mux, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func getActivities(t *testing.T, router *chi.Mux) map[string]*domain.Activity {
	t.Helper()

	rec := doRequest(t, router, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rec.Code)

	var activities map[string]*domain.Activity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &activities))
	return activities
}

func TestGetActivities(t *testing.T) {
	router := newTestRouter(t)

	activities := getActivities(t, router)

	require.Len(t, activities, 3)
	require.Contains(t, activities, "Chess Club")
	require.Contains(t, activities, "Programming Class")
	require.Contains(t, activities, "Gym Class")

	chess := activities["Chess Club"]
	assert.NotEmpty(t, chess.Description)
	assert.NotEmpty(t, chess.Schedule)
	assert.Equal(t, 12, chess.MaxParticipants)
	assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, chess.Participants)
}

func TestSignUp(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantField  string
		wantSubstr string
	}{
		{
			name:       "new student",
			target:     "/activities/Chess%20Club/signup?email=newstudent@mergington.edu",
			wantStatus: http.StatusOK,
			wantField:  "message",
			wantSubstr: "Signed up newstudent@mergington.edu for Chess Club",
		},
		{
			name:       "duplicate student",
			target:     "/activities/Chess%20Club/signup?email=michael@mergington.edu",
			wantStatus: http.StatusBadRequest,
			wantField:  "detail",
			wantSubstr: "already signed up",
		},
		{
			name:       "nonexistent activity",
			target:     "/activities/NonExistent%20Activity/signup?email=test@mergington.edu",
			wantStatus: http.StatusNotFound,
			wantField:  "detail",
			wantSubstr: "not found",
		},
		{
			name:       "missing email",
			target:     "/activities/Chess%20Club/signup",
			wantStatus: http.StatusBadRequest,
			wantField:  "detail",
			wantSubstr: "email is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t)

			rec := doRequest(t, router, http.MethodPost, tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			assert.Contains(t, strings.ToLower(body[tt.wantField]), strings.ToLower(tt.wantSubstr))
		})
	}
}

func TestSignUp_AddsParticipant(t *testing.T) {
	router := newTestRouter(t)

	before := len(getActivities(t, router)["Programming Class"].Participants)

	rec := doRequest(t, router, http.MethodPost,
		"/activities/Programming%20Class/signup?email=newstudent@mergington.edu")
	require.Equal(t, http.StatusOK, rec.Code)

	participants := getActivities(t, router)["Programming Class"].Participants
	assert.Len(t, participants, before+1)
	assert.Contains(t, participants, "newstudent@mergington.edu")
}

func TestUnregister(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantField  string
		wantSubstr string
	}{
		{
			name:       "existing participant",
			target:     "/activities/Chess%20Club/unregister?email=michael@mergington.edu",
			wantStatus: http.StatusOK,
			wantField:  "message",
			wantSubstr: "Unregistered",
		},
		{
			name:       "participant not signed up",
			target:     "/activities/Chess%20Club/unregister?email=notregistered@mergington.edu",
			wantStatus: http.StatusBadRequest,
			wantField:  "detail",
			wantSubstr: "not signed up",
		},
		{
			name:       "nonexistent activity",
			target:     "/activities/NonExistent%20Activity/unregister?email=test@mergington.edu",
			wantStatus: http.StatusNotFound,
			wantField:  "detail",
			wantSubstr: "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t)

			rec := doRequest(t, router, http.MethodPost, tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			assert.Contains(t, strings.ToLower(body[tt.wantField]), strings.ToLower(tt.wantSubstr))
		})
	}
}

func TestUnregister_RemovesParticipant(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost,
		"/activities/Chess%20Club/unregister?email=michael@mergington.edu")
	require.Equal(t, http.StatusOK, rec.Code)

	participants := getActivities(t, router)["Chess Club"].Participants
	assert.Equal(t, []string{"daniel@mergington.edu"}, participants)
}

func TestSignUpThenUnregister(t *testing.T) {
	router := newTestRouter(t)
	email := "teststudent@mergington.edu"

	rec := doRequest(t, router, http.MethodPost,
		"/activities/Gym%20Class/signup?email="+email)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, getActivities(t, router)["Gym Class"].Participants, email)

	rec = doRequest(t, router, http.MethodPost,
		"/activities/Gym%20Class/unregister?email="+email)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, getActivities(t, router)["Gym Class"].Participants, email)
}

func TestSignUp_MultipleStudents(t *testing.T) {
	router := newTestRouter(t)
	emails := []string{
		"student1@mergington.edu",
		"student2@mergington.edu",
		"student3@mergington.edu",
	}

	for _, email := range emails {
		rec := doRequest(t, router, http.MethodPost,
			"/activities/Gym%20Class/signup?email="+email)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	participants := getActivities(t, router)["Gym Class"].Participants
	for _, email := range emails {
		assert.Contains(t, participants, email)
	}
}

func TestResponses_AreJSON(t *testing.T) {
	router := newTestRouter(t)

	targets := []string{
		"/activities",
	}
	for _, target := range targets {
		rec := doRequest(t, router, http.MethodGet, target)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}

	rec := doRequest(t, router, http.MethodPost,
		"/activities/NonExistent%20Activity/signup?email=test@mergington.edu")
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
