package utils

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"sadhanaAPI/internal/types/notification"
)

// NotificationCreator is the one method the triggers need; accepting an
// interface here keeps utils from depending on the services package.
type NotificationCreator interface {
	CreateNotification(ctx context.Context, req *notification.CreateNotificationRequest) (*notification.Notification, error)
}

// Streak lengths worth celebrating. 108 matches a full mala of practice
// days.
var streakMilestones = []int{3, 7, 21, 54, 108}

func IsStreakMilestone(streak int) bool {
	for _, m := range streakMilestones {
		if streak == m {
			return true
		}
	}
	return false
}

// StreakMilestoneReached creates a milestone notification when the streak
// grows onto a milestone. A save that leaves the streak where it already
// was (a second session the same day) emits nothing, so each milestone
// notifies once. Runs after the session save commits; failures are logged
// and swallowed.
func StreakMilestoneReached(notifier NotificationCreator, userID uuid.UUID, prevStreak, streak int) {
	if streak <= prevStreak || !IsStreakMilestone(streak) {
		return
	}

	req := &notification.CreateNotificationRequest{
		UserID: userID,
		Type:   notification.TypeStreakMilestone,
		Title:  fmt.Sprintf("%d-day streak!", streak),
		Body:   fmt.Sprintf("You have practiced %d days in a row. Keep going.", streak),
		Data: map[string]any{
			"streak": streak,
		},
	}

	if _, err := notifier.CreateNotification(context.Background(), req); err != nil {
		log.Printf("Failed to create milestone notification for user %s: %v", userID, err)
	}
}
