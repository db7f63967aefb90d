package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/favorites-service/internal/api/dto"
	"github.com/spec-kit/favorites-service/internal/auth"
	"github.com/spec-kit/favorites-service/internal/service"
	apperrors "github.com/spec-kit/favorites-service/pkg/util"
)

// UsersHandler exposes the account endpoints.
type UsersHandler struct {
	auth  *service.AuthService
	likes *service.LikeService
}

// NewUsersHandler constructs handler. Withdrawal cascades onto likes, so
// the handler takes both services.
func NewUsersHandler(authService *service.AuthService, likeService *service.LikeService) *UsersHandler {
	return &UsersHandler{auth: authService, likes: likeService}
}

// Signup handles POST /api/users/signup.
func (h *UsersHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := dto.ParseAndValidate(c.Body(), &req); err != nil {
		return err
	}

	user, token, exp, err := h.auth.Signup(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     token,
		ExpiresAt: exp,
	})
}

// Login handles POST /api/users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := dto.ParseAndValidate(c.Body(), &req); err != nil {
		return err
	}

	user, token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     token,
		ExpiresAt: exp,
	})
}

// Withdraw handles POST /api/users/withdraw.
func (h *UsersHandler) Withdraw(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.WithdrawRequest
	if err := dto.ParseAndValidate(c.Body(), &req); err != nil {
		return err
	}

	if err := h.likes.WithdrawAccount(c.UserContext(), principal.UserID, req.Password); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"withdrawSuccess": true})
}

// ChangePassword handles POST /api/users/changePswd/:uid.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if c.Params("uid") != principal.UserID {
		return apperrors.NewForbidden("you are not allowed to change this account")
	}

	var req dto.ChangePasswordRequest
	if err := dto.ParseAndValidate(c.Body(), &req); err != nil {
		return err
	}

	if err := h.auth.ChangePassword(c.UserContext(), principal.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"changeSuccess": true})
}
