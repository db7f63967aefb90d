package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/favorites-service/internal/auth"
	"github.com/spec-kit/favorites-service/internal/domain"
	apperrors "github.com/spec-kit/favorites-service/pkg/util"
)

type likeServiceFixture struct {
	users *fakeUserRepo
	likes *fakeLikeRepo
	tx    *fakeTxRunner
	svc   *LikeService
}

func newLikeServiceFixture() *likeServiceFixture {
	users := newFakeUserRepo()
	likes := newFakeLikeRepo()
	tx := &fakeTxRunner{users: users, likes: likes}
	svc := NewLikeService(LikeDependencies{
		UserRepo: users,
		LikeRepo: likes,
		TxRunner: tx,
	})
	return &likeServiceFixture{users: users, likes: likes, tx: tx, svc: svc}
}

func (f *likeServiceFixture) seedUser(t *testing.T, email, password string) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	require.NoError(t, err)
	user := &domain.User{Email: email, PasswordHash: hash}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func TestAddLikeRoundTrip(t *testing.T) {
	f := newLikeServiceFixture()
	user := f.seedUser(t, "a@x.com", "password1")

	like, err := f.svc.AddLike(context.Background(), user.ID, "srcA", "nameA")
	require.NoError(t, err)
	require.NotEmpty(t, like.ID)
	assert.Equal(t, user.ID, like.CreatorID)

	loaded, err := f.svc.LoadLikes(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, *like, loaded[0])

	stored, err := f.users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{like.ID}, stored.LikeIDs)

	require.NoError(t, f.svc.DeleteLike(context.Background(), user.ID, like.ID))

	loaded, err = f.svc.LoadLikes(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	stored, err = f.users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.LikeIDs)
}

func TestAddLikeDuplicate(t *testing.T) {
	f := newLikeServiceFixture()
	user := f.seedUser(t, "a@x.com", "password1")

	_, err := f.svc.AddLike(context.Background(), user.ID, "srcA", "nameA")
	require.NoError(t, err)

	_, err = f.svc.AddLike(context.Background(), user.ID, "srcA", "nameA")
	require.Error(t, err)
	assert.Equal(t, "ALREADY_LIKED", apperrors.ToDomainError(err).Code)

	loaded, err := f.svc.LoadLikes(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestAddLikeUnknownUser(t *testing.T) {
	f := newLikeServiceFixture()

	_, err := f.svc.AddLike(context.Background(), "missing", "srcA", "nameA")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestAddLikeTxFailureLeavesNoPartialState(t *testing.T) {
	f := newLikeServiceFixture()
	user := f.seedUser(t, "a@x.com", "password1")
	f.tx.failErr = errors.New("connection reset")

	_, err := f.svc.AddLike(context.Background(), user.ID, "srcA", "nameA")
	require.Error(t, err)
	assert.Equal(t, "PERSISTENCE_FAILURE", apperrors.ToDomainError(err).Code)

	f.tx.failErr = nil
	loaded, err := f.svc.LoadLikes(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestAddLikeAttachFailureRollsBack(t *testing.T) {
	f := newLikeServiceFixture()
	user := f.seedUser(t, "a@x.com", "password1")

	// Like insert succeeds, attaching to the owner fails mid-unit.
	f.users.failNext = errors.New("connection reset")

	_, err := f.svc.AddLike(context.Background(), user.ID, "srcA", "nameA")
	require.Error(t, err)
	assert.Equal(t, "PERSISTENCE_FAILURE", apperrors.ToDomainError(err).Code)

	loaded, err := f.svc.LoadLikes(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded, "like row survived the failed atomic unit")

	stored, err := f.users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.LikeIDs)
}

func TestDeleteLikeDetachFailureRollsBack(t *testing.T) {
	f := newLikeServiceFixture()
	user := f.seedUser(t, "a@x.com", "password1")

	like, err := f.svc.AddLike(context.Background(), user.ID, "srcA", "nameA")
	require.NoError(t, err)

	// Like delete succeeds, detaching from the owner fails mid-unit.
	f.users.failNext = errors.New("connection reset")

	err = f.svc.DeleteLike(context.Background(), user.ID, like.ID)
	require.Error(t, err)
	assert.Equal(t, "PERSISTENCE_FAILURE", apperrors.ToDomainError(err).Code)

	loaded, err := f.svc.LoadLikes(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	stored, err := f.users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{like.ID}, stored.LikeIDs)
}

func TestWithdrawAccountDeleteFailureRollsBack(t *testing.T) {
	f := newLikeServiceFixture()
	user := f.seedUser(t, "a@x.com", "password1")

	like, err := f.svc.AddLike(context.Background(), user.ID, "srcA", "nameA")
	require.NoError(t, err)

	// Cascade delete of likes succeeds, removing the user fails mid-unit.
	f.users.failNext = errors.New("connection reset")

	err = f.svc.WithdrawAccount(context.Background(), user.ID, "password1")
	require.Error(t, err)
	assert.Equal(t, "PERSISTENCE_FAILURE", apperrors.ToDomainError(err).Code)

	_, err = f.users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)

	loaded, err := f.svc.LoadLikes(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, like.ID, loaded[0].ID)
}

func TestDeleteLikeNonOwner(t *testing.T) {
	f := newLikeServiceFixture()
	owner := f.seedUser(t, "a@x.com", "password1")
	other := f.seedUser(t, "b@x.com", "password1")

	like, err := f.svc.AddLike(context.Background(), owner.ID, "srcA", "nameA")
	require.NoError(t, err)

	err = f.svc.DeleteLike(context.Background(), other.ID, like.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	loaded, err := f.svc.LoadLikes(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestDeleteLikeNotFound(t *testing.T) {
	f := newLikeServiceFixture()
	user := f.seedUser(t, "a@x.com", "password1")

	err := f.svc.DeleteLike(context.Background(), user.ID, "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestLoadLikesUnknownUser(t *testing.T) {
	f := newLikeServiceFixture()

	_, err := f.svc.LoadLikes(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestWithdrawAccountCascade(t *testing.T) {
	f := newLikeServiceFixture()
	user := f.seedUser(t, "a@x.com", "password1")

	likeIDs := make([]string, 0, 3)
	for _, src := range []string{"srcA", "srcB", "srcC"} {
		like, err := f.svc.AddLike(context.Background(), user.ID, src, "name")
		require.NoError(t, err)
		likeIDs = append(likeIDs, like.ID)
	}

	require.NoError(t, f.svc.WithdrawAccount(context.Background(), user.ID, "password1"))

	for _, id := range likeIDs {
		_, err := f.likes.GetByID(context.Background(), id)
		require.Error(t, err)
	}
	_, err := f.users.GetByID(context.Background(), user.ID)
	require.Error(t, err)
}

func TestWithdrawAccountWrongPassword(t *testing.T) {
	f := newLikeServiceFixture()
	user := f.seedUser(t, "a@x.com", "password1")

	err := f.svc.WithdrawAccount(context.Background(), user.ID, "wrong")
	require.Error(t, err)
	assert.Equal(t, "INVALID_CREDENTIALS", apperrors.ToDomainError(err).Code)

	_, err = f.users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
}
