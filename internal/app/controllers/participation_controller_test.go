package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seda/hobbyhive/internal/app/models/dto"
	"github.com/seda/hobbyhive/internal/pkg/apperrors"
)

type stubParticipationService struct {
	joinPoints  int
	leavePoints int
	joinErr     error
	leaveErr    error

	lastUserID  int64
	lastEventID int64
}

func (s *stubParticipationService) Join(ctx context.Context, userID, eventID int64) (int, error) {
	s.lastUserID, s.lastEventID = userID, eventID
	return s.joinPoints, s.joinErr
}

func (s *stubParticipationService) Leave(ctx context.Context, userID, eventID int64) (int, error) {
	s.lastUserID, s.lastEventID = userID, eventID
	return s.leavePoints, s.leaveErr
}

func (s *stubParticipationService) GetJoinedEvents(ctx context.Context, userID int64) (*dto.JoinedEventListResponse, error) {
	s.lastUserID = userID
	return &dto.JoinedEventListResponse{Events: []dto.JoinedEventResponse{}}, nil
}

func newTestRouter(svc *stubParticipationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewParticipationController(svc)

	router := gin.New()
	router.POST("/api/v1/participations/join", controller.Join)
	router.POST("/api/v1/participations/leave", controller.Leave)
	router.GET("/api/v1/users/:userId/participations", controller.GetJoinedEvents)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJoinEndpoint(t *testing.T) {
	svc := &stubParticipationService{joinPoints: 15}
	router := newTestRouter(svc)

	w := postJSON(t, router, "/api/v1/participations/join", `{"user_id": 7, "event_id": 3}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.JoinResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Joined event successfully", resp.Message)
	assert.Equal(t, 15, resp.PointsEarned)
	assert.Equal(t, int64(7), svc.lastUserID)
	assert.Equal(t, int64(3), svc.lastEventID)
}

func TestJoinEndpointAlreadyJoined(t *testing.T) {
	svc := &stubParticipationService{joinErr: apperrors.ErrAlreadyJoined}
	router := newTestRouter(svc)

	w := postJSON(t, router, "/api/v1/participations/join", `{"user_id": 7, "event_id": 3}`)

	require.Equal(t, http.StatusConflict, w.Code)
	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrorCodeAlreadyJoined, resp.Error.Code)
}

func TestJoinEndpointEventNotFound(t *testing.T) {
	svc := &stubParticipationService{joinErr: apperrors.ErrEventNotFound}
	router := newTestRouter(svc)

	w := postJSON(t, router, "/api/v1/participations/join", `{"user_id": 7, "event_id": 42}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJoinEndpointRejectsMissingFields(t *testing.T) {
	svc := &stubParticipationService{}
	router := newTestRouter(svc)

	w := postJSON(t, router, "/api/v1/participations/join", `{"user_id": 7}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.lastUserID, "service must not be called on invalid input")
}

func TestLeaveEndpoint(t *testing.T) {
	svc := &stubParticipationService{leavePoints: 15}
	router := newTestRouter(svc)

	w := postJSON(t, router, "/api/v1/participations/leave", `{"user_id": 7, "event_id": 3}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.LeaveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Left event successfully", resp.Message)
	assert.Equal(t, 15, resp.PointsDeducted)
}

func TestLeaveEndpointNotJoined(t *testing.T) {
	svc := &stubParticipationService{leaveErr: apperrors.ErrNotJoined}
	router := newTestRouter(svc)

	w := postJSON(t, router, "/api/v1/participations/leave", `{"user_id": 7, "event_id": 3}`)

	require.Equal(t, http.StatusConflict, w.Code)
	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrorCodeNotJoined, resp.Error.Code)
}

func TestGetJoinedEventsEndpoint(t *testing.T) {
	svc := &stubParticipationService{}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/7/participations", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), svc.lastUserID)
}

func TestGetJoinedEventsEndpointInvalidID(t *testing.T) {
	svc := &stubParticipationService{}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/abc/participations", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
