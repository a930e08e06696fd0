package services

import (
	"context"
	"strings"
	"time"

	"messagely/internal/domain/message"
	"messagely/internal/events"
	"messagely/internal/repository"
	messagely_errors "messagely/pkg/errors"
	"messagely/pkg/logger"

	"github.com/google/uuid"
)

type MessageService struct {
	messageRepo repository.MessageRepository
	publisher   events.Publisher
	logger      *logger.Logger
	now         func() time.Time
}

func NewMessageService(messageRepo repository.MessageRepository, publisher events.Publisher, l *logger.Logger) *MessageService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	return &MessageService{
		messageRepo: messageRepo,
		publisher:   publisher,
		logger:      l,
		now:         time.Now,
	}
}

type CreateMessageInput struct {
	FromUsername string
	ToUsername   string
	Body         string
}

// Get returns a message with both participants' profiles.
// Anyone other than the sender or recipient gets ErrForbidden.
func (s *MessageService) Get(ctx context.Context, requester, id string) (message.Detail, error) {
	msgID, err := parseMessageID(id)
	if err != nil {
		return message.Detail{}, err
	}

	detail, err := s.messageRepo.GetDetail(ctx, msgID)
	if err != nil {
		return message.Detail{}, err
	}

	if !detail.IsParticipant(requester) {
		return message.Detail{}, messagely_errors.New(messagely_errors.ErrForbidden, "cannot read this message")
	}
	return detail, nil
}

func (s *MessageService) Create(ctx context.Context, in CreateMessageInput) (message.Message, error) {
	if in.FromUsername == "" {
		return message.Message{}, messagely_errors.ErrUnauthorized
	}
	if strings.TrimSpace(in.ToUsername) == "" || strings.TrimSpace(in.Body) == "" {
		return message.Message{}, messagely_errors.New(messagely_errors.ErrValidation, "to_username and body are required")
	}

	msg := message.Message{
		ID:           uuid.New(),
		FromUsername: in.FromUsername,
		ToUsername:   in.ToUsername,
		Body:         in.Body,
		SentAt:       s.now().UTC(),
	}
	if err := s.messageRepo.Create(ctx, &msg); err != nil {
		return message.Message{}, err
	}

	s.publish(ctx, msg.ToUsername, events.EventTypeMessageCreated, msg.ID, events.MessageCreatedPayload{
		ID:           msg.ID.String(),
		FromUsername: msg.FromUsername,
		ToUsername:   msg.ToUsername,
		Body:         msg.Body,
		SentAt:       msg.SentAt,
	})

	return msg, nil
}

// MarkRead stamps read_at on the first call from the recipient and returns
// the stored timestamp on every later one.
func (s *MessageService) MarkRead(ctx context.Context, requester, id string) (message.ReadReceipt, error) {
	msgID, err := parseMessageID(id)
	if err != nil {
		return message.ReadReceipt{}, err
	}

	detail, err := s.messageRepo.GetDetail(ctx, msgID)
	if err != nil {
		return message.ReadReceipt{}, err
	}

	if detail.ToUser.Username != requester {
		return message.ReadReceipt{}, messagely_errors.New(messagely_errors.ErrForbidden, "cannot set this message to read")
	}

	receipt, err := s.messageRepo.MarkRead(ctx, msgID, s.now().UTC())
	if err != nil {
		return message.ReadReceipt{}, err
	}

	if !detail.ReadAt.Valid {
		s.publish(ctx, detail.FromUser.Username, events.EventTypeMessageRead, msgID, events.MessageReadPayload{
			ID:     msgID.String(),
			ReadBy: requester,
			ReadAt: receipt.ReadAt,
		})
	}

	return receipt, nil
}

// publish never fails the caller; delivery problems are only logged.
func (s *MessageService) publish(ctx context.Context, username, eventType string, id uuid.UUID, payload interface{}) {
	env, err := events.NewEnvelope(eventType, events.AggregateMessage, id.String(), payload)
	if err != nil {
		s.logger.WithContext(ctx).Errorf("failed to build %s event: %v", eventType, err)
		return
	}
	if err := s.publisher.Publish(ctx, events.UserChannel(username), env); err != nil {
		s.logger.WithContext(ctx).Warnf("failed to publish %s event: %v", eventType, err)
	}
}

func parseMessageID(id string) (uuid.UUID, error) {
	msgID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, messagely_errors.New(messagely_errors.ErrNotFound, "no such message: %s", id)
	}
	return msgID, nil
}
