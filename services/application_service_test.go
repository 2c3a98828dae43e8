package services

import (
	"testing"

	"hostel-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitApplication(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db)
	student := createStudent(t, db, "ravi", "male")

	application, err := svc.Submit(student.ID, "Block A", "AC", "closer to the lab")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, application.Status)
	assert.Equal(t, "Block A", application.PreferredBlock)
	assert.False(t, application.AppliedAt.IsZero())
}

func TestSubmitApplicationTwiceRefused(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db)
	student := createStudent(t, db, "ravi", "male")

	_, err := svc.Submit(student.ID, "", "", "")
	require.NoError(t, err)

	_, err = svc.Submit(student.ID, "Block B", "", "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "already submitted")
}

func TestGetByStudent(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db)
	student := createStudent(t, db, "ravi", "male")

	_, err := svc.GetByStudent(student.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	submitted, err := svc.Submit(student.ID, "", "", "")
	require.NoError(t, err)

	got, err := svc.GetByStudent(student.ID)
	require.NoError(t, err)
	assert.Equal(t, submitted.ID, got.ID)
}

func TestListAllFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db)

	first := createStudent(t, db, "ravi", "male")
	second := createStudent(t, db, "anil", "male")

	a, err := svc.Submit(first.ID, "", "", "")
	require.NoError(t, err)
	_, err = svc.Submit(second.ID, "", "", "")
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Application{}).Where("id = ?", a.ID).
		Update("status", models.ApplicationRejected).Error)

	pending, err := svc.ListAll(models.ApplicationPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].StudentID)

	all, err := svc.ListAll("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
