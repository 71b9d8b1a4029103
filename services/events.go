package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/ZhuChiYu/RoomEase-sub000/models"
)

// ReservationEventChannel is the Redis pub/sub channel the notification
// service subscribes to. Delivery (push, SMS) happens entirely over there.
const ReservationEventChannel = "roomease:reservation-events"

// ReservationEvent is the payload published after a lifecycle change commits.
type ReservationEvent struct {
	Type          string                   `json:"type"` // created, updated, confirmed, checked_in, checked_out, cancelled, removed
	ReservationID uint                     `json:"reservationID"`
	RoomID        uint                     `json:"roomID"`
	PropertyID    uint                     `json:"propertyID"`
	GuestID       uint                     `json:"guestID,omitempty"`
	Status        models.ReservationStatus `json:"status,omitempty"`
	CheckInDate   time.Time                `json:"checkInDate"`
	CheckOutDate  time.Time                `json:"checkOutDate"`
	OccurredAt    time.Time                `json:"occurredAt"`
}

// EventPublisher notifies the external notification collaborator. Publishing
// is best-effort; a failed publish never fails the reservation write.
type EventPublisher interface {
	PublishReservationEvent(ctx context.Context, event ReservationEvent)
}

// RedisEventPublisher publishes events on a Redis channel.
type RedisEventPublisher struct {
	client *redis.Client
}

func NewRedisEventPublisher(client *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{client: client}
}

func (p *RedisEventPublisher) PublishReservationEvent(ctx context.Context, event ReservationEvent) {
	if p.client == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal reservation event %s for reservation %d: %v",
			event.Type, event.ReservationID, err)
		return
	}

	if err := p.client.Publish(ctx, ReservationEventChannel, payload).Err(); err != nil {
		log.Printf("Failed to publish reservation event %s for reservation %d: %v",
			event.Type, event.ReservationID, err)
	}
}
