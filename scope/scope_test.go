package scope

import (
	"testing"

	"amc/models"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func sampleEnrollments() []models.Enrollment {
	hatisala := uintPtr(1)
	satulia := uintPtr(2)
	return []models.Enrollment{
		{UserID: 10, CenterID: hatisala},
		{UserID: 11, CenterID: hatisala},
		{UserID: 12, CenterID: satulia},
		{UserID: 10, CenterID: nil}, // legacy row without a center
	}
}

func TestBoundAdminSeesOnlyHomeCenter(t *testing.T) {
	admin := Viewer{UserID: 1, Role: models.RoleAdmin, HomeCenterID: uintPtr(1)}

	// The client-supplied selection must be overridden by the binding.
	for _, requested := range []uint{AllCenters, 1, 2} {
		got := admin.FilterEnrollments(requested, sampleEnrollments())
		assert.Len(t, got, 2, "requested=%d", requested)
		for _, e := range got {
			assert.Equal(t, uint(1), *e.CenterID)
		}
	}
}

func TestGlobalAdminSelection(t *testing.T) {
	admin := Viewer{UserID: 1, Role: models.RoleAdmin}

	all := admin.FilterEnrollments(AllCenters, sampleEnrollments())
	assert.Len(t, all, 4)

	satulia := admin.FilterEnrollments(2, sampleEnrollments())
	assert.Len(t, satulia, 1)
	assert.Equal(t, uint(12), satulia[0].UserID)
}

func TestNullCenterRowNeverMatchesSpecificCenter(t *testing.T) {
	admin := Viewer{UserID: 1, Role: models.RoleAdmin}

	got := admin.FilterEnrollments(1, sampleEnrollments())
	assert.Len(t, got, 2)
	for _, e := range got {
		assert.NotNil(t, e.CenterID)
	}
}

func TestStudentScopedByOwnership(t *testing.T) {
	student := Viewer{UserID: 10, Role: models.RoleStudent}

	got := student.FilterEnrollments(AllCenters, sampleEnrollments())
	assert.Len(t, got, 2)
	for _, e := range got {
		assert.Equal(t, uint(10), e.UserID)
	}

	// Additional center constraint is ANDed onto ownership.
	got = student.FilterEnrollments(1, sampleEnrollments())
	assert.Len(t, got, 1)
	assert.Equal(t, uint(1), *got[0].CenterID)
}

func TestResolveCenterForcesBoundAdmin(t *testing.T) {
	bound := Viewer{Role: models.RoleAdmin, HomeCenterID: uintPtr(3)}
	assert.Equal(t, uint(3), bound.ResolveCenter(AllCenters))
	assert.Equal(t, uint(3), bound.ResolveCenter(7))

	global := Viewer{Role: models.RoleAdmin}
	assert.Equal(t, uint(7), global.ResolveCenter(7))
	assert.Equal(t, AllCenters, global.ResolveCenter(AllCenters))
}

func TestFilterProfiles(t *testing.T) {
	profiles := []models.User{
		{FullName: "A", CenterID: uintPtr(1)},
		{FullName: "B", CenterID: uintPtr(2)},
		{FullName: "C"}, // unassigned
	}
	profiles[0].ID = 10
	profiles[1].ID = 11
	profiles[2].ID = 12

	bound := Viewer{UserID: 1, Role: models.RoleAdmin, HomeCenterID: uintPtr(2)}
	got := bound.FilterProfiles(AllCenters, profiles)
	assert.Len(t, got, 1)
	assert.Equal(t, "B", got[0].FullName)
}

func TestFilterPaymentsThroughOwningEnrollment(t *testing.T) {
	enrollments := map[uint]models.Enrollment{
		1: {UserID: 10, CenterID: uintPtr(1)},
		2: {UserID: 12, CenterID: uintPtr(2)},
	}
	payments := []models.PaymentHistory{
		{EnrollmentID: 1, Amount: 500},
		{EnrollmentID: 2, Amount: 700},
		{EnrollmentID: 99, Amount: 900}, // orphan, dropped
	}

	bound := Viewer{UserID: 1, Role: models.RoleAdmin, HomeCenterID: uintPtr(1)}
	got := bound.FilterPayments(AllCenters, payments, enrollments)
	assert.Len(t, got, 1)
	assert.Equal(t, 500, got[0].Amount)
}

func TestFilterContentByCenter(t *testing.T) {
	videos := []models.Video{
		{Title: "v1", CenterID: uintPtr(1)},
		{Title: "v2", CenterID: uintPtr(2)},
		{Title: "v3"},
	}
	admin := Viewer{Role: models.RoleAdmin}

	assert.Len(t, admin.FilterVideos(AllCenters, videos), 3)

	got := admin.FilterVideos(1, videos)
	assert.Len(t, got, 1)
	assert.Equal(t, "v1", got[0].Title)
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, CanTransition(models.EnrollmentActive, models.EnrollmentCompleted))
	assert.True(t, CanTransition(models.EnrollmentActive, models.EnrollmentCancelled))
	assert.True(t, CanTransition(models.EnrollmentCancelled, models.EnrollmentActive))

	assert.False(t, CanTransition(models.EnrollmentCompleted, models.EnrollmentActive))
	assert.False(t, CanTransition(models.EnrollmentCompleted, models.EnrollmentCancelled))
	assert.False(t, CanTransition(models.EnrollmentActive, models.EnrollmentActive))
	assert.False(t, CanTransition("unknown", models.EnrollmentActive))
}
