package utils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"sadhanaAPI/internal/types/notification"
)

type countingCreator struct {
	calls int
	last  *notification.CreateNotificationRequest
}

func (c *countingCreator) CreateNotification(ctx context.Context, req *notification.CreateNotificationRequest) (*notification.Notification, error) {
	c.calls++
	c.last = req
	return nil, nil
}

func TestIsStreakMilestone(t *testing.T) {
	for _, streak := range []int{3, 7, 21, 54, 108} {
		assert.True(t, IsStreakMilestone(streak), "streak %d", streak)
	}
	for _, streak := range []int{0, 1, 2, 4, 6, 20, 55, 107, 109} {
		assert.False(t, IsStreakMilestone(streak), "streak %d", streak)
	}
}

func TestStreakMilestoneReached_FiresOnCrossing(t *testing.T) {
	creator := &countingCreator{}
	userID := uuid.New()

	StreakMilestoneReached(creator, userID, 2, 3)

	assert.Equal(t, 1, creator.calls)
	assert.Equal(t, notification.TypeStreakMilestone, creator.last.Type)
	assert.Equal(t, userID, creator.last.UserID)
	assert.Equal(t, "3-day streak!", creator.last.Title)
}

func TestStreakMilestoneReached_SecondSaveSameDayIsSilent(t *testing.T) {
	creator := &countingCreator{}
	userID := uuid.New()

	// First session of the day lifts the streak onto the milestone.
	StreakMilestoneReached(creator, userID, 2, 3)
	// Later sessions the same day leave the streak where it was.
	StreakMilestoneReached(creator, userID, 3, 3)
	StreakMilestoneReached(creator, userID, 3, 3)

	assert.Equal(t, 1, creator.calls)
}

func TestStreakMilestoneReached_NonMilestoneGrowth(t *testing.T) {
	creator := &countingCreator{}

	StreakMilestoneReached(creator, uuid.New(), 3, 4)

	assert.Equal(t, 0, creator.calls)
}
