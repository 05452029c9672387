package interest

import (
	"github.com/akeren/interest-waitlist/internal/models"
	"github.com/akeren/interest-waitlist/pkg/constants"
	"github.com/akeren/interest-waitlist/pkg/validation"
)

// SubmitInterestRequest is the POST /submit-interest body. Subscribed is a
// pointer so that an absent or null value can fall back to the default.
type SubmitInterestRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Subscribed *bool  `json:"subscribed"`
}

type SubmissionView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Subscribed bool   `json:"subscribed"`
	CreatedAt  string `json:"created_at"`
}

type SubmissionResponse struct {
	Message    string         `json:"message"`
	Submission SubmissionView `json:"submission"`
}

type InterestCountResponse struct {
	Count int64 `json:"count"`
}

type ListSubmissionsQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

type SubmissionListResponse struct {
	Submissions []SubmissionView `json:"submissions"`
	Limit       int              `json:"limit"`
	Offset      int              `json:"offset"`
}

// SubmissionDraft is a request after defaults have been applied and before
// validation.
type SubmissionDraft struct {
	Name       string
	Email      string
	Subscribed bool
}

// ========================================
// Mappers
// ========================================

func NewSubmissionDraft(req *SubmitInterestRequest) SubmissionDraft {
	subscribed := models.DefaultSubscribed
	if req.Subscribed != nil {
		subscribed = *req.Subscribed
	}

	return SubmissionDraft{
		Name:       req.Name,
		Email:      req.Email,
		Subscribed: subscribed,
	}
}

// ToInterestSubmissionModel normalizes the draft into a storable record.
func ToInterestSubmissionModel(draft SubmissionDraft) *models.InterestSubmission {
	return models.NewInterestSubmission(
		validation.NormalizeName(draft.Name),
		validation.NormalizeEmail(draft.Email),
		draft.Subscribed,
	)
}

func ToSubmissionView(submission *models.InterestSubmission) SubmissionView {
	if submission == nil {
		return SubmissionView{}
	}
	return SubmissionView{
		ID:         submission.ID,
		Name:       submission.Name,
		Email:      submission.Email,
		Subscribed: submission.Subscribed,
		CreatedAt:  submission.CreatedAt.Format(constants.RFC3339DateTimeFormat),
	}
}
