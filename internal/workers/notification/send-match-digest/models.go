// internal/workers/notification/send-match-digest/models.go
package sendmatchdigest

import "jobmatch-workers/internal/models"

type Input struct {
	UserID         string               `json:"userId"`
	PersonaID      string               `json:"personaId"`
	PersonaName    string               `json:"personaName,omitempty"`
	RecipientEmail string               `json:"recipientEmail,omitempty"`
	RecipientPhone string               `json:"recipientPhone,omitempty"`
	Threshold      *int                 `json:"threshold,omitempty"`
	Matches        []models.MatchResult `json:"matches"`
}

const (
	StatusSent    = "sent"
	StatusPartial = "partial"
	StatusSkipped = "skipped"
)

type Output struct {
	DigestID       string `json:"digestId"`
	Status         string `json:"status"`
	EmailSent      bool   `json:"emailSent"`
	SMSSent        bool   `json:"smsSent"`
	EmailMessageID string `json:"emailMessageId,omitempty"`
	SMSMessageID   string `json:"smsMessageId,omitempty"`
	Included       int    `json:"included"`
}
