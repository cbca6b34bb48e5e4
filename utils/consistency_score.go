package utils

import "math"

// ConsistencyScore weights an active streak above raw volume so a daily
// ten-minute practice outranks occasional marathon sessions.
func ConsistencyScore(currentStreak, totalSessions, totalRepetitions int) float64 {
	streakScore := math.Pow(float64(currentStreak), 1.5) * 2.0
	sessionScore := float64(totalSessions) * 0.5
	repetitionScore := float64(totalRepetitions) * 0.01

	return math.Round((streakScore+sessionScore+repetitionScore)*100) / 100
}
