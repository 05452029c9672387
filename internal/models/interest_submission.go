package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultSubscribed is the newsletter opt-in value used when a submission
// omits it.
const DefaultSubscribed = false

// InterestSubmission is one waitlist signup. Rows are never updated.
type InterestSubmission struct {
	ID         string    `gorm:"type:text;primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	Email      string    `gorm:"type:text;not null;uniqueIndex:interest_submissions_email_key" json:"email"`
	Subscribed bool      `gorm:"not null" json:"subscribed"`
	CreatedAt  time.Time `gorm:"not null;index:idx_interest_submissions_created_at,sort:desc" json:"created_at"`
}

func (InterestSubmission) TableName() string {
	return "interest_submissions"
}

func (s *InterestSubmission) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// NewInterestSubmission expects already-normalized name and email.
func NewInterestSubmission(name, email string, subscribed bool) *InterestSubmission {
	return &InterestSubmission{
		Name:       name,
		Email:      email,
		Subscribed: subscribed,
	}
}
