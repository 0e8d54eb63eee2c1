package service

import "time"

// LateDays returns how many whole days late a submission is, any partial
// day rounded up. Zero when the submission is on time.
func LateDays(dueDate, submittedAt time.Time) int {
	if !submittedAt.After(dueDate) {
		return 0
	}
	elapsed := submittedAt.Sub(dueDate)
	days := int(elapsed / (24 * time.Hour))
	if elapsed%(24*time.Hour) != 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// EffectiveGrade applies the late penalty to a raw grade. The penalty is
// latePenaltyPercent of maxPoints per late day. A submission accepted
// despite allowLate being false is not penalized further — the submission
// window check already decided its fate. The result is always within
// [0, maxPoints].
func EffectiveGrade(rawGrade, maxPoints float64, isLate bool, lateDays int, latePenaltyPercent float64, allowLate bool) float64 {
	grade := rawGrade
	if isLate && allowLate {
		if lateDays < 1 {
			lateDays = 1
		}
		grade -= latePenaltyPercent / 100 * maxPoints * float64(lateDays)
	}
	if grade < 0 {
		grade = 0
	}
	if grade > maxPoints {
		grade = maxPoints
	}
	return grade
}
