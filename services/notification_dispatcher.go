package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"sadhanaAPI/internal/types/notification"
)

type PushNotificationProvider interface {
	SendPush(ctx context.Context, tokens []notification.DeviceToken, title, body string, data map[string]any) error
}

// NotificationDispatcher fans stored notifications out to push transports
// through a small worker pool, and runs the hourly streak-at-risk sweep.
type NotificationDispatcher struct {
	service      *NotificationService
	pushProvider PushNotificationProvider
	workers      int
	jobQueue     chan *DispatchJob
	stopChan     chan struct{}
	wg           sync.WaitGroup
}

type DispatchJob struct {
	Notification *notification.Notification
	Preferences  *notification.NotificationPreferences
}

func NewNotificationDispatcher(service *NotificationService) *NotificationDispatcher {
	dispatcher := &NotificationDispatcher{
		service:  service,
		workers:  3,
		jobQueue: make(chan *DispatchJob, 100),
		stopChan: make(chan struct{}),
	}

	dispatcher.startWorkers()
	go dispatcher.sweepStreaksAtRisk()

	return dispatcher
}

func (d *NotificationDispatcher) SetPushProvider(provider PushNotificationProvider) {
	d.pushProvider = provider
}

func (d *NotificationDispatcher) startWorkers() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

func (d *NotificationDispatcher) Stop() {
	close(d.stopChan)
	d.wg.Wait()
}

func (d *NotificationDispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case job := <-d.jobQueue:
			d.processJob(job)
		case <-d.stopChan:
			return
		}
	}
}

func (d *NotificationDispatcher) processJob(job *DispatchJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	notif := job.Notification
	prefs := job.Preferences

	if prefs.PushEnabled && len(prefs.DeviceTokens) > 0 && d.pushProvider != nil {
		err := d.pushProvider.SendPush(ctx, prefs.DeviceTokens, notif.Title, notif.Body, notif.Data)
		if err != nil {
			log.Printf("Push failed for user %s: %v", notif.UserID, err)
			d.markStatus(ctx, notif.ID, notification.StatusFailed)
			return
		}
	}

	d.markStatus(ctx, notif.ID, notification.StatusSent)
}

// DispatchNotification queues the job; a full queue drops the push rather
// than blocking the save path.
func (d *NotificationDispatcher) DispatchNotification(ctx context.Context, notif *notification.Notification, prefs *notification.NotificationPreferences) {
	job := &DispatchJob{Notification: notif, Preferences: prefs}

	select {
	case d.jobQueue <- job:
	default:
		log.Printf("Notification queue full, dropping push for %s", notif.ID)
	}
}

func (d *NotificationDispatcher) markStatus(ctx context.Context, id uuid.UUID, status notification.NotificationStatus) {
	query := `UPDATE notifications SET status = $2, sent_at = NOW() WHERE id = $1`
	if _, err := d.service.db.Exec(ctx, query, id, status); err != nil {
		log.Printf("Failed to mark notification %s as %s: %v", id, status, err)
	}
}

// sweepStreaksAtRisk nudges users whose streak would break today: last
// practice was yesterday (UTC) and nothing logged yet. One nudge per user
// per day.
func (d *NotificationDispatcher) sweepStreaksAtRisk() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.runAtRiskSweep()
		case <-d.stopChan:
			return
		}
	}
}

func (d *NotificationDispatcher) runAtRiskSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	query := `
		SELECT us.user_id, us.current_streak
		FROM user_stats us
		WHERE us.current_streak > 0
			AND us.last_practice_date = (NOW() AT TIME ZONE 'UTC')::date - 1
			AND NOT EXISTS (
				SELECT 1 FROM notifications n
				WHERE n.user_id = us.user_id
					AND n.type = $1
					AND n.created_at >= (NOW() AT TIME ZONE 'UTC')::date
			)
	`

	rows, err := d.service.db.Query(ctx, query, notification.TypeStreakRisk)
	if err != nil {
		log.Printf("Streak-risk sweep query failed: %v", err)
		return
	}
	defer rows.Close()

	type atRisk struct {
		userID uuid.UUID
		streak int
	}
	var candidates []atRisk
	for rows.Next() {
		var c atRisk
		if err := rows.Scan(&c.userID, &c.streak); err != nil {
			continue
		}
		candidates = append(candidates, c)
	}
	rows.Close()

	for _, c := range candidates {
		req := &notification.CreateNotificationRequest{
			UserID: c.userID,
			Type:   notification.TypeStreakRisk,
			Title:  "Your streak needs you",
			Body:   fmt.Sprintf("Practice today to keep your %d-day streak alive.", c.streak),
			Data:   map[string]any{"streak": c.streak},
		}
		if _, err := d.service.CreateNotification(ctx, req); err != nil {
			log.Printf("Failed to create streak-risk notification for %s: %v", c.userID, err)
		}
	}
}
