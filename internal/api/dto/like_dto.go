package dto

import "github.com/spec-kit/favorites-service/internal/domain"

// LikeAddRequest payload for adding a favorite artist.
type LikeAddRequest struct {
	Src  string `json:"src" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// LikeResponse is the wire shape of a like.
type LikeResponse struct {
	ID      string `json:"id"`
	Src     string `json:"src"`
	Name    string `json:"name"`
	Creator string `json:"creator"`
}

// NewLikeResponse maps a domain like to its wire shape.
func NewLikeResponse(like *domain.Like) LikeResponse {
	return LikeResponse{
		ID:      like.ID,
		Src:     like.Src,
		Name:    like.Name,
		Creator: like.CreatorID,
	}
}

// NewLikeListResponse maps a slice of likes.
func NewLikeListResponse(likes []domain.Like) []LikeResponse {
	out := make([]LikeResponse, 0, len(likes))
	for i := range likes {
		out = append(out, NewLikeResponse(&likes[i]))
	}
	return out
}
