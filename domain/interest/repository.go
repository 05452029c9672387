package interest

import (
	"context"
	"errors"

	"github.com/akeren/interest-waitlist/internal/models"
	apperrors "github.com/akeren/interest-waitlist/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=interest

type InterestRepository interface {
	// EmailExists reports whether a submission with this normalized email is stored.
	EmailExists(ctx context.Context, email string) (bool, error)
	// InsertSubmission stores a new submission. A duplicate email yields a
	// conflict error wrapping ErrEmailAlreadyRegistered.
	InsertSubmission(ctx context.Context, submission *models.InterestSubmission) (*models.InterestSubmission, error)
	CountSubmissions(ctx context.Context) (int64, error)
	// FindByEmail returns a not-found error wrapping ErrSubmissionNotFound
	// when no row matches.
	FindByEmail(ctx context.Context, email string) (*models.InterestSubmission, error)
	// ListSubmissions returns submissions newest first.
	ListSubmissions(ctx context.Context, limit, offset int) ([]*models.InterestSubmission, error)
	DeleteSubmission(ctx context.Context, id string) error
}

type interestRepository struct {
	db *gorm.DB
}

func NewInterestRepository(db *gorm.DB) InterestRepository {
	return &interestRepository{db: db}
}

func (r *interestRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, ErrSubmissionNotFound):
		return false, nil
	case err != nil:
		return false, err
	}

	return true, nil
}

// InsertSubmission relies on the unique email constraint: the insert does
// nothing on conflict and a zero row count means the email was taken by a
// concurrent submission after the pre-check.
func (r *interestRepository) InsertSubmission(ctx context.Context, submission *models.InterestSubmission) (*models.InterestSubmission, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(submission)

	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return nil, newDuplicateEmailError(result.Error)
		}
		return nil, newStoreError(MsgSubmitFailed, result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, newDuplicateEmailError(nil)
	}

	return submission, nil
}

func (r *interestRepository) CountSubmissions(ctx context.Context) (int64, error) {
	var count int64

	if err := r.db.WithContext(ctx).Model(&models.InterestSubmission{}).Count(&count).Error; err != nil {
		return 0, newStoreError(MsgCountFailed, err)
	}

	return count, nil
}

func (r *interestRepository) FindByEmail(ctx context.Context, email string) (*models.InterestSubmission, error) {
	var submission models.InterestSubmission

	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newNotFoundError(err)
		}
		return nil, newStoreError(MsgCheckEmailFailed, err)
	}

	return &submission, nil
}

func (r *interestRepository) ListSubmissions(ctx context.Context, limit, offset int) ([]*models.InterestSubmission, error) {
	var submissions []*models.InterestSubmission

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&submissions).Error
	if err != nil {
		return nil, newStoreError(MsgListFailed, err)
	}

	return submissions, nil
}

func (r *interestRepository) DeleteSubmission(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.InterestSubmission{})

	if result.Error != nil {
		return newStoreError(MsgDeleteFailed, result.Error)
	}

	if result.RowsAffected == 0 {
		return newNotFoundError(nil)
	}

	return nil
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateKeyError(err)
}
