package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sadhanaAPI/internal/types/notification"
)

type NotificationService struct {
	db         *pgxpool.Pool
	dispatcher *NotificationDispatcher
}

func NewNotificationService(db *pgxpool.Pool) *NotificationService {
	service := &NotificationService{db: db}
	service.dispatcher = NewNotificationDispatcher(service)
	return service
}

// SetPushProvider injects the concrete push transport (FCM in production).
func (s *NotificationService) SetPushProvider(provider PushNotificationProvider) {
	s.dispatcher.SetPushProvider(provider)
}

// Stop drains the dispatcher's worker pool and halts the at-risk sweep.
// Call once during shutdown.
func (s *NotificationService) Stop() {
	s.dispatcher.Stop()
}

func (s *NotificationService) getUserID(ctx context.Context, clerkID string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("user not found: %w", err)
	}
	return userID, nil
}

// CreateNotification stores the notification and queues it for push
// delivery if the user allows that type.
func (s *NotificationService) CreateNotification(ctx context.Context, req *notification.CreateNotificationRequest) (*notification.Notification, error) {
	prefs, err := s.getPreferencesByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if enabled, ok := prefs.EnabledTypes[string(req.Type)]; ok && !enabled {
		// Silently skip types the user turned off.
		return nil, nil
	}

	dataJSON, _ := json.Marshal(req.Data)

	query := `
		INSERT INTO notifications (user_id, type, status, title, body, data)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, type, status, title, body, is_read, created_at
	`

	notif := &notification.Notification{Data: req.Data}
	err = s.db.QueryRow(
		ctx, query,
		req.UserID, req.Type, notification.StatusPending, req.Title, req.Body, dataJSON,
	).Scan(
		&notif.ID, &notif.UserID, &notif.Type, &notif.Status,
		&notif.Title, &notif.Body, &notif.IsRead, &notif.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.dispatcher.DispatchNotification(ctx, notif, prefs)

	return notif, nil
}

func (s *NotificationService) GetNotifications(ctx context.Context, clerkID string, limit int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	userID, err := s.getUserID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	if limit < 1 || limit > 100 {
		limit = 50
	}

	query := `
		SELECT id, user_id, type, status, title, body, data, is_read, created_at, sent_at
		FROM notifications
		WHERE user_id = $1 AND ($2 = false OR is_read = false)
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := s.db.Query(ctx, query, userID, unreadOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		notif := &notification.Notification{}
		var dataJSON []byte
		if err := rows.Scan(
			&notif.ID, &notif.UserID, &notif.Type, &notif.Status,
			&notif.Title, &notif.Body, &dataJSON, &notif.IsRead,
			&notif.CreatedAt, &notif.SentAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		if len(dataJSON) > 0 {
			json.Unmarshal(dataJSON, &notif.Data)
		}
		notifications = append(notifications, notif)
	}

	unread, err := s.countUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &notification.NotificationListResponse{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, clerkID string) (int, error) {
	userID, err := s.getUserID(ctx, clerkID)
	if err != nil {
		return 0, err
	}
	return s.countUnread(ctx, userID)
}

func (s *NotificationService) countUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID uuid.UUID, clerkID string) error {
	userID, err := s.getUserID(ctx, clerkID)
	if err != nil {
		return err
	}

	result, err := s.db.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`,
		notificationID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", notificationID, ErrNotFound)
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, clerkID string) error {
	userID, err := s.getUserID(ctx, clerkID)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func (s *NotificationService) GetPreferences(ctx context.Context, clerkID string) (*notification.NotificationPreferences, error) {
	userID, err := s.getUserID(ctx, clerkID)
	if err != nil {
		return nil, err
	}
	return s.getPreferencesByUserID(ctx, userID)
}

func (s *NotificationService) getPreferencesByUserID(ctx context.Context, userID uuid.UUID) (*notification.NotificationPreferences, error) {
	query := `
		SELECT user_id, push_enabled, enabled_types
		FROM notification_preferences
		WHERE user_id = $1
	`

	prefs := &notification.NotificationPreferences{}
	var typesJSON []byte
	err := s.db.QueryRow(ctx, query, userID).Scan(&prefs.UserID, &prefs.PushEnabled, &typesJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s.createDefaultPreferences(ctx, userID)
		}
		return nil, fmt.Errorf("failed to fetch preferences: %w", err)
	}
	if len(typesJSON) > 0 {
		json.Unmarshal(typesJSON, &prefs.EnabledTypes)
	}

	tokens, err := s.getDeviceTokens(ctx, userID)
	if err != nil {
		return nil, err
	}
	prefs.DeviceTokens = tokens

	return prefs, nil
}

func (s *NotificationService) createDefaultPreferences(ctx context.Context, userID uuid.UUID) (*notification.NotificationPreferences, error) {
	query := `
		INSERT INTO notification_preferences (user_id, push_enabled, enabled_types)
		VALUES ($1, true, '{}')
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := s.db.Exec(ctx, query, userID); err != nil {
		return nil, fmt.Errorf("failed to create default preferences: %w", err)
	}

	return &notification.NotificationPreferences{
		UserID:       userID,
		PushEnabled:  true,
		EnabledTypes: map[string]bool{},
	}, nil
}

func (s *NotificationService) UpdatePreferences(ctx context.Context, clerkID string, req *notification.UpdatePreferencesRequest) (*notification.NotificationPreferences, error) {
	userID, err := s.getUserID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	prefs, err := s.getPreferencesByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.PushEnabled != nil {
		prefs.PushEnabled = *req.PushEnabled
	}
	if req.EnabledTypes != nil {
		prefs.EnabledTypes = req.EnabledTypes
	}

	typesJSON, _ := json.Marshal(prefs.EnabledTypes)
	query := `
		UPDATE notification_preferences
		SET push_enabled = $2, enabled_types = $3
		WHERE user_id = $1
	`
	if _, err := s.db.Exec(ctx, query, userID, prefs.PushEnabled, typesJSON); err != nil {
		return nil, fmt.Errorf("failed to update preferences: %w", err)
	}

	return prefs, nil
}

func (s *NotificationService) RegisterDevice(ctx context.Context, clerkID string, req notification.RegisterDeviceRequest) error {
	userID, err := s.getUserID(ctx, clerkID)
	if err != nil {
		return err
	}
	if req.Token == "" {
		return fmt.Errorf("device token is required")
	}

	query := `
		INSERT INTO device_tokens (user_id, token, platform)
		VALUES ($1, $2, $3)
		ON CONFLICT (token)
		DO UPDATE SET user_id = $1, platform = $3, updated_at = NOW()
	`
	if _, err := s.db.Exec(ctx, query, userID, req.Token, req.Platform); err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}
	return nil
}

func (s *NotificationService) getDeviceTokens(ctx context.Context, userID uuid.UUID) ([]notification.DeviceToken, error) {
	rows, err := s.db.Query(ctx,
		`SELECT token, platform FROM device_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []notification.DeviceToken
	for rows.Next() {
		var t notification.DeviceToken
		if err := rows.Scan(&t.Token, &t.Platform); err != nil {
			return nil, fmt.Errorf("failed to scan device token: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}
