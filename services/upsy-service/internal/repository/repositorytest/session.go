package repositorytest

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/model"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/repository"
)

// SessionRepository is an in-memory repository.SessionRepository.
type SessionRepository struct {
	mu       sync.Mutex
	sessions map[bson.ObjectID]*model.Session
}

var _ repository.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[bson.ObjectID]*model.Session)}
}

func (r *SessionRepository) CreateSession(_ context.Context, session *model.Session) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	session.ID = bson.NewObjectID()
	session.CreatedAt = now
	session.UpdatedAt = now

	stored := *session
	r.sessions[session.ID] = &stored

	return session, nil
}

func (r *SessionRepository) GetSession(_ context.Context, id string) (*model.Session, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	cp := *session
	return &cp, nil
}

func (r *SessionRepository) DeleteSession(_ context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, objectID)

	return nil
}

// Len returns the number of stored sessions.
func (r *SessionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}
