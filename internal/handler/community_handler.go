package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pawmarket/internal/domain"
	"pawmarket/internal/middleware"
	"pawmarket/internal/service"
)

type CommunityHandler struct {
	communityService service.CommunityService
}

func NewCommunityHandler(communityService service.CommunityService) *CommunityHandler {
	return &CommunityHandler{communityService: communityService}
}

func (h *CommunityHandler) Create(c *fiber.Ctx) error {
	input := domain.CreateCommunityPostInput{
		Content: c.FormValue("content"),
	}
	if input.Content == "" {
		if err := c.BodyParser(&input); err != nil {
			return middleware.BadRequest("Invalid request body")
		}
	}

	image, err := formImage(c, "image")
	if err != nil {
		return err
	}

	post, err := h.communityService.Create(c.Context(), middleware.GetCurrentUserID(c), input, image)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *CommunityHandler) List(c *fiber.Ctx) error {
	params := domain.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	result, err := h.communityService.List(c.Context(), params)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *CommunityHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	var input domain.UpdateCommunityPostInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	post, err := h.communityService.Update(c.Context(), middleware.GetCurrentUserID(c), id, input)
	if err != nil {
		switch err {
		case service.ErrPostNotFound:
			return middleware.NotFound("Post not found")
		case service.ErrNotAuthor:
			return middleware.Forbidden("Only the author may update this post")
		}
		return err
	}
	return c.JSON(post)
}

func (h *CommunityHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	if err := h.communityService.Delete(c.Context(), middleware.GetCurrentUserID(c), id); err != nil {
		switch err {
		case service.ErrPostNotFound:
			return middleware.NotFound("Post not found")
		case service.ErrNotAuthor:
			return middleware.Forbidden("Only the author may delete this post")
		}
		return err
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

func (h *CommunityHandler) Like(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	if err := h.communityService.Like(c.Context(), middleware.GetCurrentUserID(c), id); err != nil {
		if err == service.ErrPostNotFound {
			return middleware.NotFound("Post not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"message": "Liked"})
}

func (h *CommunityHandler) AddComment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	var input domain.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	comment, err := h.communityService.AddComment(c.Context(), middleware.GetCurrentUserID(c), id, input)
	if err != nil {
		if err == service.ErrPostNotFound {
			return middleware.NotFound("Post not found")
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *CommunityHandler) ListComments(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	comments, err := h.communityService.ListComments(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": comments})
}
