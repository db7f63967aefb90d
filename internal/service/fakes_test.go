package service

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/favorites-service/internal/domain"
	"github.com/spec-kit/favorites-service/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User

	failNext error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) WithDB(_ repository.DB) repository.UserRepository { return f }

func (f *fakeUserRepo) takeFailure() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return err
	}
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	user.ID = uuid.NewString()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	clone.LikeIDs = append([]string{}, user.LikeIDs...)
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) AttachLike(_ context.Context, userID, likeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return err
	}
	user, ok := f.users[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	user.LikeIDs = append(user.LikeIDs, likeID)
	return nil
}

func (f *fakeUserRepo) DetachLike(_ context.Context, userID, likeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return err
	}
	user, ok := f.users[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	kept := user.LikeIDs[:0]
	for _, id := range user.LikeIDs {
		if id != likeID {
			kept = append(kept, id)
		}
	}
	user.LikeIDs = kept
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return err
	}
	if _, ok := f.users[userID]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.users, userID)
	return nil
}

// fakeLikeRepo is an in-memory LikeRepository for service tests.
type fakeLikeRepo struct {
	mu    sync.Mutex
	likes map[string]*domain.Like
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: map[string]*domain.Like{}}
}

func (f *fakeLikeRepo) WithDB(_ repository.DB) repository.LikeRepository { return f }

func (f *fakeLikeRepo) Create(_ context.Context, like *domain.Like) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.likes {
		if existing.CreatorID == like.CreatorID && existing.Src == like.Src {
			return repository.ErrDuplicate
		}
	}
	like.ID = uuid.NewString()
	clone := *like
	f.likes[like.ID] = &clone
	return nil
}

func (f *fakeLikeRepo) GetByID(_ context.Context, id string) (*domain.Like, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	like, ok := f.likes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *like
	return &clone, nil
}

func (f *fakeLikeRepo) GetByCreatorAndSource(_ context.Context, creatorID, src string) (*domain.Like, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, like := range f.likes {
		if like.CreatorID == creatorID && like.Src == src {
			clone := *like
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeLikeRepo) ListByCreator(_ context.Context, creatorID string) ([]domain.Like, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []domain.Like{}
	for _, like := range f.likes {
		if like.CreatorID == creatorID {
			result = append(result, *like)
		}
	}
	return result, nil
}

func (f *fakeLikeRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.likes[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.likes, id)
	return nil
}

func (f *fakeLikeRepo) DeleteByCreator(_ context.Context, creatorID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, like := range f.likes {
		if like.CreatorID == creatorID {
			delete(f.likes, id)
		}
	}
	return nil
}

func (f *fakeUserRepo) snapshot() map[string]*domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := make(map[string]*domain.User, len(f.users))
	for id, user := range f.users {
		clone := *user
		clone.LikeIDs = append([]string{}, user.LikeIDs...)
		copied[id] = &clone
	}
	return copied
}

func (f *fakeUserRepo) restore(users map[string]*domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = users
}

func (f *fakeLikeRepo) snapshot() map[string]*domain.Like {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := make(map[string]*domain.Like, len(f.likes))
	for id, like := range f.likes {
		clone := *like
		copied[id] = &clone
	}
	return copied
}

func (f *fakeLikeRepo) restore(likes map[string]*domain.Like) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.likes = likes
}

// fakeTxRunner runs the unit against the fakes with rollback semantics: both
// stores are snapshotted before fn and restored if fn fails, so a unit that
// dies between its writes leaves no partial state behind. failErr simulates a
// transaction that cannot even begin.
type fakeTxRunner struct {
	users   *fakeUserRepo
	likes   *fakeLikeRepo
	failErr error
}

func (f *fakeTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context, db repository.DB) error) error {
	if f.failErr != nil {
		return f.failErr
	}
	usersBefore := f.users.snapshot()
	likesBefore := f.likes.snapshot()
	if err := fn(ctx, nil); err != nil {
		f.users.restore(usersBefore)
		f.likes.restore(likesBefore)
		return err
	}
	return nil
}
