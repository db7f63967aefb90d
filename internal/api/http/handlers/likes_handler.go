package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/favorites-service/internal/api/dto"
	"github.com/spec-kit/favorites-service/internal/auth"
	"github.com/spec-kit/favorites-service/internal/service"
	apperrors "github.com/spec-kit/favorites-service/pkg/util"
)

// LikesHandler exposes the like-list endpoints.
type LikesHandler struct {
	likes *service.LikeService
}

// NewLikesHandler constructs handler.
func NewLikesHandler(likeService *service.LikeService) *LikesHandler {
	return &LikesHandler{likes: likeService}
}

// Add handles POST /api/like/add.
func (h *LikesHandler) Add(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.LikeAddRequest
	if err := dto.ParseAndValidate(c.Body(), &req); err != nil {
		return err
	}

	like, err := h.likes.AddLike(c.UserContext(), principal.UserID, req.Src, req.Name)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"like": dto.NewLikeResponse(like)})
}

// Load handles GET /api/like/load/:userId.
func (h *LikesHandler) Load(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	likes, err := h.likes.LoadLikes(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"likeList": dto.NewLikeListResponse(likes)})
}

// Delete handles DELETE /api/like/delete/:likeId.
func (h *LikesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.likes.DeleteLike(c.UserContext(), principal.UserID, c.Params("likeId")); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "like deleted"})
}
