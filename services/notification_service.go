package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"grant-management-api/config"
	"grant-management-api/models"

	"gorm.io/gorm"
)

// NotificationEvent describes one fan-out: a set of recipients, one
// message, optionally a related proposal and an email copy.
type NotificationEvent struct {
	Recipients        []int
	SenderID          *int
	Type              string
	Title             string
	Message           string
	RelatedProposalID *int
	EmailTo           []string
}

// NotificationService dispatches events through a buffered queue so
// callers never block on, or fail because of, notification delivery.
// Failures are logged and dropped; the triggering operation has
// already succeeded by the time the event is queued.
type NotificationService struct {
	db     *gorm.DB
	events chan NotificationEvent
}

// Notifications is the process-wide dispatcher, wired in main.
var Notifications *NotificationService

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{
		db:     db,
		events: make(chan NotificationEvent, 256),
	}
}

// Start runs the delivery worker until ctx is done.
func (s *NotificationService) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-s.events:
				s.deliver(event)
			}
		}
	}()
}

// Enqueue hands an event to the worker. A full queue drops the event
// rather than blocking the request path.
func (s *NotificationService) Enqueue(event NotificationEvent) {
	if s == nil {
		return
	}
	select {
	case s.events <- event:
	default:
		log.Printf("notification queue full, dropping %q", event.Title)
	}
}

func (s *NotificationService) deliver(event NotificationEvent) {
	now := time.Now()
	rows := make([]models.Notification, 0, len(event.Recipients))
	for _, userID := range event.Recipients {
		rows = append(rows, models.Notification{
			UserID:            userID,
			SenderID:          event.SenderID,
			Type:              event.Type,
			Title:             event.Title,
			Message:           event.Message,
			RelatedProposalID: event.RelatedProposalID,
			ExpiresAt:         now.Add(models.NotificationExpiry),
			CreateAt:          now,
		})
	}

	if len(rows) > 0 {
		if err := s.db.Create(&rows).Error; err != nil {
			log.Printf("notification insert failed for %q: %v", event.Title, err)
		}
	}

	if len(event.EmailTo) > 0 {
		body := fmt.Sprintf("<p>%s</p>", event.Message)
		if err := config.SendMail(event.EmailTo, event.Title, body); err != nil {
			log.Printf("notification email failed for %q: %v", event.Title, err)
		}
	}
}

// AdminRecipients returns the ids of all active admin accounts.
func AdminRecipients(db *gorm.DB) []int {
	var ids []int
	if err := db.Model(&models.User{}).
		Where("role = ? AND delete_at IS NULL", models.RoleAdmin).
		Pluck("user_id", &ids).Error; err != nil {
		log.Printf("admin recipient lookup failed: %v", err)
		return nil
	}
	return ids
}
