package scope

import "amc/models"

// statusTransitions is the explicit enrollment state machine. A
// cancelled enrollment may be reactivated; a completed one stays
// completed.
var statusTransitions = map[string][]string{
	models.EnrollmentActive:    {models.EnrollmentCompleted, models.EnrollmentCancelled},
	models.EnrollmentCancelled: {models.EnrollmentActive},
	models.EnrollmentCompleted: {},
}

// CanTransition reports whether an enrollment may move between the two
// statuses. Unknown statuses never transition.
func CanTransition(from, to string) bool {
	if from == to {
		return false
	}
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known enrollment status.
func ValidStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}
