package services

import (
	"testing"

	"hostel-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplaintLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewComplaintService(db)
	student := createStudent(t, db, "ravi", "male")

	complaint, err := svc.Submit(student.ID, "electrical", "Fan not working", "Ceiling fan in 101 stopped spinning")
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintOpen, complaint.Status)
	assert.Nil(t, complaint.ResolvedAt)

	updated, err := svc.Update(complaint.ID, models.ComplaintInProgress, "", "maintenance team")
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintInProgress, updated.Status)
	assert.Equal(t, "maintenance team", updated.AssignedTo)
	assert.Nil(t, updated.ResolvedAt, "resolved_at is only stamped on resolution")

	resolved, err := svc.Update(complaint.ID, models.ComplaintResolved, "Fan replaced", "")
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintResolved, resolved.Status)
	assert.Equal(t, "Fan replaced", resolved.AdminResponse)
	require.NotNil(t, resolved.ResolvedAt)
}

func TestUpdateUnknownComplaint(t *testing.T) {
	db := newTestDB(t)
	svc := NewComplaintService(db)

	_, err := svc.Update(7, models.ComplaintResolved, "", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByStudentHonoursLimit(t *testing.T) {
	db := newTestDB(t)
	svc := NewComplaintService(db)
	student := createStudent(t, db, "ravi", "male")

	for _, title := range []string{"one", "two", "three"} {
		_, err := svc.Submit(student.ID, "general", title, "details")
		require.NoError(t, err)
	}

	limited, err := svc.ListByStudent(student.ID, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	all, err := svc.ListByStudent(student.ID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
