// Package contact stores inbound messages from the site's contact form.
package contact

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/karloscodes/cartridge"
	"github.com/karloscodes/cartridge/sqlite"
	"gorm.io/gorm"
)

// ErrInvalid marks validation failures so the HTTP layer can map them
// to 400 instead of 500.
var ErrInvalid = errors.New("invalid contact message")

const (
	maxNameLength    = 200
	maxEmailLength   = 320
	maxSubjectLength = 500
	maxBodyLength    = 10000
)

type Message struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"index;not null" json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type SubmitInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"message"`
}

// Submit validates and stores one contact message.
func Submit(dbManager cartridge.DBManager, logger *slog.Logger, input *SubmitInput) (*Message, error) {
	if input == nil {
		return nil, fmt.Errorf("missing contact input")
	}

	message := &Message{
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Subject:   strings.TrimSpace(input.Subject),
		Body:      strings.TrimSpace(input.Body),
		CreatedAt: time.Now().UTC(),
	}
	if err := validate(message); err != nil {
		return nil, err
	}

	db := dbManager.GetConnection()
	err := sqlite.PerformWrite(logger, db, func(tx *gorm.DB) error {
		return tx.Create(message).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}

	logger.Info("Contact message received",
		slog.Uint64("id", uint64(message.ID)),
		slog.String("email", message.Email))
	return message, nil
}

func validate(message *Message) error {
	switch {
	case message.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalid)
	case len(message.Name) > maxNameLength:
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalid, maxNameLength)
	case message.Email == "":
		return fmt.Errorf("%w: email is required", ErrInvalid)
	case len(message.Email) > maxEmailLength || !strings.Contains(message.Email, "@"):
		return fmt.Errorf("%w: email is invalid", ErrInvalid)
	case len(message.Subject) > maxSubjectLength:
		return fmt.Errorf("%w: subject exceeds %d characters", ErrInvalid, maxSubjectLength)
	case message.Body == "":
		return fmt.Errorf("%w: message is required", ErrInvalid)
	case len(message.Body) > maxBodyLength:
		return fmt.Errorf("%w: message exceeds %d characters", ErrInvalid, maxBodyLength)
	}
	return nil
}
