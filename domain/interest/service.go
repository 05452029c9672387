package interest

import (
	"context"
	"strings"

	"github.com/akeren/interest-waitlist/internal/log"
	"github.com/akeren/interest-waitlist/pkg/constants"
	"github.com/akeren/interest-waitlist/pkg/validation"
)

//go:generate mockgen -source=service.go -destination=mock_service.go -package=interest

type InterestService interface {
	// SubmitInterest validates, de-duplicates and stores a signup.
	SubmitInterest(ctx context.Context, req *SubmitInterestRequest) (*SubmissionResponse, error)

	// GetInterestCount returns the total number of signups. A store failure is
	// returned as an error, never as a zero count.
	GetInterestCount(ctx context.Context) (*InterestCountResponse, error)

	// ListSubmissions returns signups newest first. A zero limit means the default.
	ListSubmissions(ctx context.Context, limit, offset int) (*SubmissionListResponse, error)

	DeleteSubmission(ctx context.Context, id string) error
}

type interestService struct {
	logger     *log.Logger
	repository InterestRepository
	countCache CountCache
}

func NewInterestService(logger *log.Logger, repository InterestRepository, countCache CountCache) InterestService {
	if countCache == nil {
		countCache = noopCountCache{}
	}
	return &interestService{logger: logger, repository: repository, countCache: countCache}
}

func (s *interestService) SubmitInterest(ctx context.Context, req *SubmitInterestRequest) (*SubmissionResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		logger.Warn("SubmitInterest received empty request")
		return nil, newMalformedRequestError(nil)
	}

	draft := NewSubmissionDraft(req)

	result := validation.Validate(draft.Name, draft.Email, draft.Subscribed)
	if !result.IsValid {
		logger.Info("Submission failed validation", "errors", len(result.Errors))
		return nil, newValidationFailedError(result.Errors)
	}

	submission := ToInterestSubmissionModel(draft)

	exists, err := s.repository.EmailExists(ctx, submission.Email)
	if err != nil {
		logger.Error("Failed to check email existence", "error", err)
		return nil, err
	}
	if exists {
		logger.Info("Duplicate submission rejected")
		return nil, newDuplicateEmailError(nil)
	}

	created, err := s.repository.InsertSubmission(ctx, submission)
	if err != nil {
		logger.Error("Failed to insert submission", "error", err)
		return nil, err
	}

	s.countCache.Invalidate(ctx)

	logger.Info("Interest submitted", "id", created.ID, "subscribed", created.Subscribed)

	return &SubmissionResponse{
		Message:    MsgSubmitted,
		Submission: ToSubmissionView(created),
	}, nil
}

func (s *interestService) GetInterestCount(ctx context.Context) (*InterestCountResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if count, ok := s.countCache.Get(ctx); ok {
		return &InterestCountResponse{Count: count}, nil
	}

	count, err := s.repository.CountSubmissions(ctx)
	if err != nil {
		logger.Error("Failed to count submissions", "error", err)
		return nil, err
	}

	s.countCache.Set(ctx, count)

	return &InterestCountResponse{Count: count}, nil
}

func (s *interestService) ListSubmissions(ctx context.Context, limit, offset int) (*SubmissionListResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	switch {
	case limit <= 0:
		limit = constants.DefaultAdminListLimit
	case limit > constants.MaxAdminListLimit:
		limit = constants.MaxAdminListLimit
	}
	if offset < 0 {
		offset = 0
	}

	submissions, err := s.repository.ListSubmissions(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list submissions", "error", err)
		return nil, err
	}

	views := make([]SubmissionView, 0, len(submissions))
	for _, submission := range submissions {
		views = append(views, ToSubmissionView(submission))
	}

	return &SubmissionListResponse{Submissions: views, Limit: limit, Offset: offset}, nil
}

func (s *interestService) DeleteSubmission(ctx context.Context, id string) error {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if strings.TrimSpace(id) == "" {
		logger.Warn("DeleteSubmission received empty id")
		return newNotFoundError(nil)
	}

	if err := s.repository.DeleteSubmission(ctx, id); err != nil {
		logger.Error("Failed to delete submission", "id", id, "error", err)
		return err
	}

	s.countCache.Invalidate(ctx)

	logger.Info("Submission deleted", "id", id)

	return nil
}
