package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/model"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/repository"
	"github.com/vasapolrittideah/upsy-api/shared/apperror"
)

// SubmissionUsecase defines the lead submission use cases.
type SubmissionUsecase interface {
	CreateSubmission(ctx context.Context, submission *model.Submission) (*model.Submission, error)
	ListSubmissions(ctx context.Context) ([]*model.Submission, error)
}

var ErrSubmissionEmailTaken = apperror.Conflict("This email is already registered")

type submissionUsecase struct {
	submissionRepo repository.SubmissionRepository
}

func NewSubmissionUsecase(submissionRepo repository.SubmissionRepository) SubmissionUsecase {
	return &submissionUsecase{submissionRepo: submissionRepo}
}

func (u *submissionUsecase) CreateSubmission(
	ctx context.Context,
	submission *model.Submission,
) (*model.Submission, error) {
	created, err := u.submissionRepo.CreateSubmission(ctx, submission)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrSubmissionEmailTaken
		}

		return nil, err
	}

	return created, nil
}

func (u *submissionUsecase) ListSubmissions(ctx context.Context) ([]*model.Submission, error) {
	return u.submissionRepo.ListSubmissions(ctx, repository.FilterSubmissionsParams{})
}
