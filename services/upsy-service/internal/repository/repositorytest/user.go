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

// UserRepository is an in-memory repository.UserRepository.
type UserRepository struct {
	mu    sync.Mutex
	users map[bson.ObjectID]*model.User

	// CreateErr, when set, is returned by CreateUser.
	CreateErr error
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[bson.ObjectID]*model.User)}
}

func (r *UserRepository) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CreateErr != nil {
		return nil, r.CreateErr
	}

	for _, existing := range r.users {
		if existing.Email == user.Email ||
			existing.AadharNumber == user.AadharNumber ||
			existing.PANNumber == user.PANNumber {
			return nil, DuplicateKeyError()
		}
	}

	now := time.Now()
	user.ID = bson.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.users[user.ID] = &stored

	return user, nil
}

func (r *UserRepository) GetUser(_ context.Context, id string) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	cp := *user
	return &cp, nil
}

func (r *UserRepository) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *UserRepository) Exists(_ context.Context, field repository.UniqueUserField, value string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		var got string
		switch field {
		case repository.UserFieldEmail:
			got = user.Email
		case repository.UserFieldAadhar:
			got = user.AadharNumber
		case repository.UserFieldPAN:
			got = user.PANNumber
		}
		if got == value {
			return true, nil
		}
	}

	return false, nil
}

func (r *UserRepository) VerifyEmail(_ context.Context, token string, now time.Time) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if token == "" || user.EmailVerificationToken != token {
			continue
		}
		if user.EmailVerificationExpires == nil || !user.EmailVerificationExpires.After(now) {
			continue
		}

		user.IsEmailVerified = true
		user.EmailVerificationToken = ""
		user.EmailVerificationExpires = nil
		user.UpdatedAt = now

		cp := *user
		return &cp, nil
	}

	return nil, mongo.ErrNoDocuments
}

func (r *UserRepository) ReplaceVerificationToken(
	_ context.Context,
	id string,
	token string,
	expiresAt time.Time,
) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[objectID]
	if !ok || user.IsEmailVerified {
		return mongo.ErrNoDocuments
	}

	user.EmailVerificationToken = token
	user.EmailVerificationExpires = &expiresAt
	user.UpdatedAt = time.Now()

	return nil
}

func (r *UserRepository) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[objectID]; ok {
		user.LastLoginAt = &at
		user.UpdatedAt = at
	}

	return nil
}

// Put stores user as is, assigning an id when it has none. It is meant for
// test fixtures that need a specific state.
func (r *UserRepository) Put(user *model.User) *model.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}

	stored := *user
	r.users[user.ID] = &stored

	return user
}

// Find returns a copy of the stored user with id, or nil.
func (r *UserRepository) Find(id bson.ObjectID) *model.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil
	}

	cp := *user
	return &cp
}
