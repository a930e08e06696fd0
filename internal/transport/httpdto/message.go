package httpdto

import (
	"time"

	"messagely/internal/domain/message"
)

// CreateMessageRequest is used for POST /messages
type CreateMessageRequest struct {
	ToUsername string `json:"to_username"`
	Body       string `json:"body"`
}

type CreatedMessageDTO struct {
	ID           string    `json:"id"`
	FromUsername string    `json:"from_username"`
	ToUsername   string    `json:"to_username"`
	Body         string    `json:"body"`
	SentAt       time.Time `json:"sent_at"`
}

type MessageDetailDTO struct {
	ID       string     `json:"id"`
	Body     string     `json:"body"`
	SentAt   time.Time  `json:"sent_at"`
	ReadAt   *time.Time `json:"read_at"`
	FromUser ProfileDTO `json:"from_user"`
	ToUser   ProfileDTO `json:"to_user"`
}

// InboxMessageDTO is an entry of GET /users/:username/to
type InboxMessageDTO struct {
	ID       string     `json:"id"`
	Body     string     `json:"body"`
	SentAt   time.Time  `json:"sent_at"`
	ReadAt   *time.Time `json:"read_at"`
	FromUser ProfileDTO `json:"from_user"`
}

// OutboxMessageDTO is an entry of GET /users/:username/from
type OutboxMessageDTO struct {
	ID     string     `json:"id"`
	Body   string     `json:"body"`
	SentAt time.Time  `json:"sent_at"`
	ReadAt *time.Time `json:"read_at"`
	ToUser ProfileDTO `json:"to_user"`
}

type ReadReceiptDTO struct {
	ID     string    `json:"id"`
	ReadAt time.Time `json:"read_at"`
}

type MessageResponse[T any] struct {
	Message T `json:"message"`
}

type MessagesResponse[T any] struct {
	Messages []T `json:"messages"`
}

func ToCreatedMessageDTO(m message.Message) CreatedMessageDTO {
	return CreatedMessageDTO{
		ID:           m.ID.String(),
		FromUsername: m.FromUsername,
		ToUsername:   m.ToUsername,
		Body:         m.Body,
		SentAt:       m.SentAt,
	}
}

func ToMessageDetailDTO(d message.Detail) MessageDetailDTO {
	return MessageDetailDTO{
		ID:       d.ID.String(),
		Body:     d.Body,
		SentAt:   d.SentAt,
		ReadAt:   nullTime(d.ReadAt),
		FromUser: ToProfileDTO(d.FromUser),
		ToUser:   ToProfileDTO(d.ToUser),
	}
}

func ToInboxDTOs(msgs []message.Counterpart) []InboxMessageDTO {
	out := make([]InboxMessageDTO, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, InboxMessageDTO{
			ID:       m.ID.String(),
			Body:     m.Body,
			SentAt:   m.SentAt,
			ReadAt:   nullTime(m.ReadAt),
			FromUser: ToProfileDTO(m.User),
		})
	}
	return out
}

func ToOutboxDTOs(msgs []message.Counterpart) []OutboxMessageDTO {
	out := make([]OutboxMessageDTO, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, OutboxMessageDTO{
			ID:     m.ID.String(),
			Body:   m.Body,
			SentAt: m.SentAt,
			ReadAt: nullTime(m.ReadAt),
			ToUser: ToProfileDTO(m.User),
		})
	}
	return out
}

func ToReadReceiptDTO(r message.ReadReceipt) ReadReceiptDTO {
	return ReadReceiptDTO{ID: r.ID.String(), ReadAt: r.ReadAt}
}
