package repositorytest

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/model"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/repository"
)

// SubmissionRepository is an in-memory repository.SubmissionRepository.
// Submissions are kept in insertion order.
type SubmissionRepository struct {
	mu          sync.Mutex
	submissions []*model.Submission

	// Now stamps created submissions. It defaults to time.Now.
	Now func() time.Time

	// CreateErr, when set, is returned by CreateSubmission.
	CreateErr error
}

var _ repository.SubmissionRepository = (*SubmissionRepository)(nil)

func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{Now: time.Now}
}

func (r *SubmissionRepository) CreateSubmission(
	_ context.Context,
	submission *model.Submission,
) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CreateErr != nil {
		return nil, r.CreateErr
	}

	now := r.Now()
	submission.ID = bson.NewObjectID()
	submission.CreatedAt = now
	submission.UpdatedAt = now

	stored := *submission
	r.submissions = append(r.submissions, &stored)

	return submission, nil
}

func (r *SubmissionRepository) ListSubmissions(
	_ context.Context,
	params repository.FilterSubmissionsParams,
) ([]*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []*model.Submission{}
	for i := len(r.submissions) - 1; i >= 0; i-- {
		cp := *r.submissions[i]
		result = append(result, &cp)
	}

	return paginate(result, params.Limit, params.Offset), nil
}

func paginate[T any](items []T, limit, offset uint64) []T {
	if offset >= uint64(len(items)) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < uint64(len(items)) {
		items = items[:limit]
	}
	return items
}
