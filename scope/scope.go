// Package scope holds the center-scoping predicates and the derived
// metric calculations behind the student and admin dashboards. All
// functions are pure: they never touch the database and are fed the
// viewer identity plus already-fetched rows.
package scope

import "amc/models"

// AllCenters selects every center. Real center IDs start at 1.
const AllCenters uint = 0

// Viewer is the trusted identity of the signed-in user, rebuilt from
// the database on every request. HomeCenterID on an admin marks a
// center-bound admin.
type Viewer struct {
	UserID       uint
	Role         string
	HomeCenterID *uint
}

// ResolveCenter returns the center selection actually in force for the
// viewer. A center-bound admin is always forced onto its home center,
// no matter what the client asked for.
func (v Viewer) ResolveCenter(requested uint) uint {
	if v.Role == models.RoleAdmin && v.HomeCenterID != nil {
		return *v.HomeCenterID
	}
	return requested
}

// matchesCenter reports whether a record's center matches the resolved
// selection. Records without a center only ever match AllCenters.
func matchesCenter(resolved uint, centerID *uint) bool {
	if resolved == AllCenters {
		return true
	}
	return centerID != nil && *centerID == resolved
}

// BelongsToScope is the scoping predicate of the dashboards: admins see
// by center, students see what they own (with an optional extra center
// constraint).
func (v Viewer) BelongsToScope(requested uint, ownerID uint, centerID *uint) bool {
	resolved := v.ResolveCenter(requested)
	if v.Role == models.RoleAdmin {
		return matchesCenter(resolved, centerID)
	}
	return ownerID == v.UserID && matchesCenter(resolved, centerID)
}

// FilterEnrollments returns the enrollments the viewer may see.
func (v Viewer) FilterEnrollments(requested uint, enrollments []models.Enrollment) []models.Enrollment {
	out := make([]models.Enrollment, 0, len(enrollments))
	for _, e := range enrollments {
		if v.BelongsToScope(requested, e.UserID, e.CenterID) {
			out = append(out, e)
		}
	}
	return out
}

// FilterProfiles returns the student profiles the viewer may see. A
// profile is owned by its own user and scoped by its home center.
func (v Viewer) FilterProfiles(requested uint, profiles []models.User) []models.User {
	out := make([]models.User, 0, len(profiles))
	for _, p := range profiles {
		if v.BelongsToScope(requested, p.ID, p.CenterID) {
			out = append(out, p)
		}
	}
	return out
}

// FilterVideos filters center-scoped marketing videos. Content rows
// have no owner, so only the center constraint applies.
func (v Viewer) FilterVideos(requested uint, videos []models.Video) []models.Video {
	resolved := v.ResolveCenter(requested)
	out := make([]models.Video, 0, len(videos))
	for _, vid := range videos {
		if matchesCenter(resolved, vid.CenterID) {
			out = append(out, vid)
		}
	}
	return out
}

// FilterAchievements filters center-scoped achievement entries.
func (v Viewer) FilterAchievements(requested uint, achievements []models.Achievement) []models.Achievement {
	resolved := v.ResolveCenter(requested)
	out := make([]models.Achievement, 0, len(achievements))
	for _, a := range achievements {
		if matchesCenter(resolved, a.CenterID) {
			out = append(out, a)
		}
	}
	return out
}

// FilterPayments scopes ledger rows through their owning enrollment.
// Rows whose enrollment is unknown are dropped.
func (v Viewer) FilterPayments(requested uint, payments []models.PaymentHistory, enrollments map[uint]models.Enrollment) []models.PaymentHistory {
	out := make([]models.PaymentHistory, 0, len(payments))
	for _, p := range payments {
		e, ok := enrollments[p.EnrollmentID]
		if !ok {
			continue
		}
		if v.BelongsToScope(requested, e.UserID, e.CenterID) {
			out = append(out, p)
		}
	}
	return out
}
