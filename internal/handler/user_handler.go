package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pawmarket/internal/domain"
	"pawmarket/internal/middleware"
	"pawmarket/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	user, err := h.userService.GetByID(c.Context(), id)
	if err != nil {
		if err == service.ErrUserNotFound {
			return middleware.NotFound("User not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"user": user})
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var input domain.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	user, err := h.userService.UpdateProfile(c.Context(), middleware.GetCurrentUserID(c), input)
	if err != nil {
		if err == service.ErrUserNotFound {
			return middleware.NotFound("User not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"user": user})
}

func (h *UserHandler) DeleteAccount(c *fiber.Ctx) error {
	if err := h.userService.DeleteAccount(c.Context(), middleware.GetCurrentUserID(c)); err != nil {
		if err == service.ErrUserNotFound {
			return middleware.NotFound("User not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"message": "Account deleted"})
}

func (h *UserHandler) Rate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	var input domain.RateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.userService.RateUser(c.Context(), middleware.GetCurrentUserID(c), id, input); err != nil {
		switch err {
		case service.ErrUserNotFound:
			return middleware.NotFound("User not found")
		case service.ErrCannotRateSelf:
			return middleware.BadRequest("Users cannot rate themselves")
		case service.ErrInvalidRating:
			return middleware.BadRequest("Rating must be between 1 and 5")
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Rating recorded"})
}

func (h *UserHandler) GetRatings(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	ratings, err := h.userService.GetRatings(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ratings})
}
