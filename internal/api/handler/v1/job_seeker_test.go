package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerfair/jobfair-api/internal/domain"
	"github.com/careerfair/jobfair-api/internal/testutil"
)

func TestJobSeekerHandler_RegisterAndReview(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := newTestRouter(t, db, true)

	event := testutil.SeedEvent(t, db, "Autumn Fair")

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/job-seekers", map[string]interface{}{
		"event_id": event.ID, "full_name": "Dana Scully", "email": "dana@example.com", "phone": "+1 555 0100",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var seeker domain.JobSeeker
	decodeData(t, env, &seeker)
	assert.Equal(t, domain.RegistrationPending, seeker.RegistrationStatus)
	assert.Equal(t, domain.SeekerUnassigned, seeker.AssignmentStatus)
	assert.Equal(t, domain.PriorityMedium, seeker.PriorityLevel)

	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/job-seekers", map[string]interface{}{
		"event_id": event.ID, "full_name": "No Mail", "email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	reviewPath := fmt.Sprintf("/api/v1/job-seekers/%d/registration", seeker.ID)
	w, _ = doJSON(t, r, http.MethodPatch, reviewPath, map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = doJSON(t, r, http.MethodPatch, reviewPath, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeData(t, env, &seeker)
	assert.Equal(t, domain.RegistrationApproved, seeker.RegistrationStatus)

	w, _ = doJSON(t, r, http.MethodPatch, reviewPath, map[string]string{"status": "rejected"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/job-seekers/%d", seeker.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, env, &seeker)
	assert.Equal(t, "Dana Scully", seeker.FullName)

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/job-seekers/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/job-seekers/0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJobSeekerHandler_HandleList(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := newTestRouter(t, db, true)

	event := testutil.SeedEvent(t, db, "Autumn Fair")
	other := testutil.SeedEvent(t, db, "Spring Fair")
	testutil.SeedJobSeeker(t, db, event.ID, "ann", "approved", "high")
	testutil.SeedJobSeeker(t, db, event.ID, "pete", "pending", "low")
	testutil.SeedJobSeeker(t, db, other.ID, "zoe", "approved", "medium")

	w, env := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/job-seekers?event_id=%d&registration_status=approved", event.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var seekers []domain.JobSeeker
	decodeData(t, env, &seekers)
	require.Len(t, seekers, 1)
	assert.Equal(t, "ann", seekers[0].FullName)

	w, env = doJSON(t, r, http.MethodGet, "/api/v1/job-seekers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, env, &seekers)
	assert.Len(t, seekers, 3)
}
