package v1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	v1 "github.com/careerfair/jobfair-api/internal/api/handler/v1"
	"github.com/careerfair/jobfair-api/internal/api/middleware"
	"github.com/careerfair/jobfair-api/internal/cache"
	"github.com/careerfair/jobfair-api/internal/domain"
	"github.com/careerfair/jobfair-api/internal/notify"
	"github.com/careerfair/jobfair-api/internal/repository"
	"github.com/careerfair/jobfair-api/internal/repository/dao"
	"github.com/careerfair/jobfair-api/internal/service"
)

var testAdmin = domain.User{ID: 7, Email: "admin@example.com", Name: "Admin", Role: domain.RoleAdmin}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// newTestRouter mounts the fair handlers on a sqlite-backed stack. Requests are
// treated as coming from testAdmin unless asAdmin is false.
func newTestRouter(t *testing.T, db *gorm.DB, asAdmin bool) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	fairRepo := repository.NewFairRepository(dao.NewFairDAO(db))
	seekerRepo := repository.NewJobSeekerRepository(dao.NewJobSeekerDAO(db))
	assignmentSvc := service.NewAssignmentService(
		repository.NewAssignmentRepository(dao.NewAssignmentDAO(db)),
		seekerRepo,
		fairRepo,
		cache.Noop{},
		notify.Noop{},
		service.BulkOptions{BatchSize: 10, BatchPause: 0},
	)

	assignments := v1.NewAssignmentHandler(assignmentSvc)
	fair := v1.NewFairHandler(service.NewFairService(fairRepo, cache.Noop{}))
	seekers := v1.NewJobSeekerHandler(service.NewJobSeekerService(seekerRepo, cache.Noop{}))

	r := gin.New()
	g := r.Group("/api/v1", func(ctx *gin.Context) {
		if asAdmin {
			ctx.Set(middleware.ContextKeyUser, testAdmin)
		}
		ctx.Next()
	})

	g.POST("/assignments", assignments.HandleAssign)
	g.POST("/assignments/bulk", assignments.HandleBulkAssign)
	g.PATCH("/assignments/:assignmentID/status", assignments.HandleUpdateStatus)
	g.DELETE("/assignments/:assignmentID", assignments.HandleRemove)
	g.GET("/assignments/statistics", assignments.HandleStatistics)
	g.GET("/job-seekers/unassigned", assignments.HandleUnassignedJobSeekers)
	g.GET("/booths/available", assignments.HandleAvailableBooths)
	g.GET("/booths/:boothID/assignments", assignments.HandleBoothAssignments)

	g.POST("/events", fair.HandleCreateEvent)
	g.GET("/events", fair.HandleListEvents)
	g.GET("/events/:eventID/booths", fair.HandleListEventBooths)
	g.POST("/employers", fair.HandleCreateEmployer)
	g.POST("/booths", fair.HandleCreateBooth)
	g.GET("/booths/:boothID", fair.HandleGetBooth)
	g.PATCH("/booths/:boothID/active", fair.HandleSetBoothActive)
	g.POST("/booths/:boothID/slots", fair.HandleCreateSlot)
	g.GET("/booths/:boothID/slots", fair.HandleListSlots)

	g.POST("/job-seekers", seekers.HandleRegister)
	g.GET("/job-seekers", seekers.HandleList)
	g.GET("/job-seekers/:jobSeekerID", seekers.HandleGet)
	g.PATCH("/job-seekers/:jobSeekerID/registration", seekers.HandleReview)

	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}

	return w, env
}

func decodeData(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}
