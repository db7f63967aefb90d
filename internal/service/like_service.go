package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/favorites-service/internal/auth"
	"github.com/spec-kit/favorites-service/internal/domain"
	"github.com/spec-kit/favorites-service/internal/events"
	"github.com/spec-kit/favorites-service/internal/repository"
	apperrors "github.com/spec-kit/favorites-service/pkg/util"
)

// LikeService coordinates like mutations against the user directory and the
// like store. Every mutation spanning both runs inside one transaction so a
// like row and its owner's like list never diverge.
type LikeService struct {
	users      repository.UserRepository
	likes      repository.LikeRepository
	tx         repository.TxRunner
	dispatcher events.Dispatcher
}

// LikeDependencies bundles requirements for the like service.
type LikeDependencies struct {
	UserRepo   repository.UserRepository
	LikeRepo   repository.LikeRepository
	TxRunner   repository.TxRunner
	Dispatcher events.Dispatcher
}

// NewLikeService constructs the service.
func NewLikeService(deps LikeDependencies) *LikeService {
	return &LikeService{
		users:      deps.UserRepo,
		likes:      deps.LikeRepo,
		tx:         deps.TxRunner,
		dispatcher: deps.Dispatcher,
	}
}

// AddLike records a favorite artist for the requester. The duplicate check
// races with identical concurrent requests; the unique index on
// likes(creator_id, src) is the backstop.
func (s *LikeService) AddLike(ctx context.Context, requesterID, src, name string) (*domain.Like, error) {
	if _, err := s.likes.GetByCreatorAndSource(ctx, requesterID, src); err == nil {
		return nil, apperrors.NewConflict("ALREADY_LIKED", "you already added this artist")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewPersistenceError(err)
	}

	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, apperrors.NewPersistenceError(err)
	}

	like := &domain.Like{
		Src:       src,
		Name:      strings.TrimSpace(name),
		CreatorID: requesterID,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context, db repository.DB) error {
		if err := s.likes.WithDB(db).Create(ctx, like); err != nil {
			return err
		}
		return s.users.WithDB(db).AttachLike(ctx, requesterID, like.ID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("ALREADY_LIKED", "you already added this artist")
		}
		return nil, apperrors.NewPersistenceError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventLikeAdded,
		UserID:  requesterID,
		Payload: events.LikeAddedPayload{LikeID: like.ID, Src: like.Src, Name: like.Name},
	})
	return like, nil
}

// LoadLikes resolves a user's like list to full like records. An existing
// user with no likes yields an empty list, not an error.
func (s *LikeService) LoadLikes(ctx context.Context, userID string) ([]domain.Like, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, apperrors.NewPersistenceError(err)
	}

	likes, err := s.likes.ListByCreator(ctx, userID)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return likes, nil
}

// DeleteLike removes a like owned by the requester.
func (s *LikeService) DeleteLike(ctx context.Context, requesterID, likeID string) error {
	like, err := s.likes.GetByID(ctx, likeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("like")
		}
		return apperrors.NewPersistenceError(err)
	}

	if like.CreatorID != requesterID {
		return apperrors.NewForbidden("you are not allowed to delete this like")
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, db repository.DB) error {
		if err := s.likes.WithDB(db).Delete(ctx, likeID); err != nil {
			return err
		}
		return s.users.WithDB(db).DetachLike(ctx, like.CreatorID, likeID)
	})
	if err != nil {
		return apperrors.NewPersistenceError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventLikeRemoved,
		UserID:  requesterID,
		Payload: events.LikeRemovedPayload{LikeID: likeID},
	})
	return nil
}

// WithdrawAccount deletes the user and all owned likes after verifying the
// supplied password. Both deletes run in one transaction.
func (s *LikeService) WithdrawAccount(ctx context.Context, userID, suppliedPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user")
		}
		return apperrors.NewPersistenceError(err)
	}

	match, err := auth.ComparePassword(user.PasswordHash, suppliedPassword)
	if err != nil {
		return apperrors.NewCryptoError(err)
	}
	if !match {
		return apperrors.NewInvalidCredentials()
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, db repository.DB) error {
		if err := s.likes.WithDB(db).DeleteByCreator(ctx, userID); err != nil {
			return err
		}
		return s.users.WithDB(db).Delete(ctx, userID)
	})
	if err != nil {
		return apperrors.NewPersistenceError(err)
	}

	s.publish(ctx, events.Event{
		Type:   events.EventUserWithdrawn,
		UserID: userID,
		Payload: events.UserWithdrawnPayload{
			Email:        user.Email,
			LikesRemoved: len(user.LikeIDs),
		},
	})
	return nil
}

func (s *LikeService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
