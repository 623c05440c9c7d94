package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pawmarket/internal/domain"
	"pawmarket/internal/middleware"
	"pawmarket/internal/service"
)

type BlogHandler struct {
	blogService service.BlogService
}

func NewBlogHandler(blogService service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

func (h *BlogHandler) Create(c *fiber.Ctx) error {
	input := domain.CreateBlogPostInput{
		Title:   c.FormValue("title"),
		Content: c.FormValue("content"),
	}
	if input.Title == "" && input.Content == "" {
		// Not multipart; fall back to a JSON body.
		if err := c.BodyParser(&input); err != nil {
			return middleware.BadRequest("Invalid request body")
		}
	}

	image, err := formImage(c, "image")
	if err != nil {
		return err
	}

	post, err := h.blogService.Create(c.Context(), middleware.GetCurrentUserID(c), input, image)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *BlogHandler) List(c *fiber.Ctx) error {
	params := domain.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	result, err := h.blogService.List(c.Context(), params)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *BlogHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	post, err := h.blogService.GetByID(c.Context(), id)
	if err != nil {
		if err == service.ErrPostNotFound {
			return middleware.NotFound("Post not found")
		}
		return err
	}
	return c.JSON(post)
}

func (h *BlogHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	var input domain.UpdateBlogPostInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	post, err := h.blogService.Update(c.Context(), middleware.GetCurrentUserID(c), id, input)
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

func (h *BlogHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	if err := h.blogService.Delete(c.Context(), middleware.GetCurrentUserID(c), id); err != nil {
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

func (h *BlogHandler) Like(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	if err := h.blogService.Like(c.Context(), middleware.GetCurrentUserID(c), id); err != nil {
		if err == service.ErrPostNotFound {
			return middleware.NotFound("Post not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"message": "Liked"})
}

func (h *BlogHandler) Unlike(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	if err := h.blogService.Unlike(c.Context(), middleware.GetCurrentUserID(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Like removed"})
}

func (h *BlogHandler) AddComment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	var input domain.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	comment, err := h.blogService.AddComment(c.Context(), middleware.GetCurrentUserID(c), id, input)
	if err != nil {
		if err == service.ErrPostNotFound {
			return middleware.NotFound("Post not found")
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *BlogHandler) ListComments(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	comments, err := h.blogService.ListComments(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": comments})
}

// formImage reads an optional multipart image field.
func formImage(c *fiber.Ctx, field string) (*service.PetImage, error) {
	file, err := c.FormFile(field)
	if err != nil || file == nil {
		return nil, nil
	}
	if file.Size > maxImageSize {
		return nil, middleware.BadRequest("Image must be less than 10MB")
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	reader, err := file.Open()
	if err != nil {
		return nil, middleware.BadRequest("Failed to read image")
	}

	return &service.PetImage{
		FileName: file.Filename,
		Size:     file.Size,
		MimeType: mimeType,
		Reader:   reader,
	}, nil
}
