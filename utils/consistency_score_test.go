package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsistencyScore(t *testing.T) {
	assert.Equal(t, 0.0, ConsistencyScore(0, 0, 0))

	// 1-day streak, one session of a full mala:
	// 2*1^1.5 + 0.5*1 + 0.01*108 = 3.58
	assert.InDelta(t, 3.58, ConsistencyScore(1, 1, 108), 0.001)

	// 4-day streak, 10 sessions, 1000 repetitions:
	// 2*8 + 5 + 10 = 31
	assert.InDelta(t, 31.0, ConsistencyScore(4, 10, 1000), 0.001)
}

func TestConsistencyScore_StreakOutweighsVolume(t *testing.T) {
	daily := ConsistencyScore(7, 7, 7*108)
	marathon := ConsistencyScore(1, 2, 2000)
	assert.Greater(t, daily, marathon)
}
