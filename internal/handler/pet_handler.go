package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pawmarket/internal/domain"
	"pawmarket/internal/middleware"
	"pawmarket/internal/service"
)

const maxImageSize = 10 * 1024 * 1024

type PetHandler struct {
	petService   service.PetService
	mediaService service.MediaService
}

func NewPetHandler(petService service.PetService, mediaService service.MediaService) *PetHandler {
	return &PetHandler{
		petService:   petService,
		mediaService: mediaService,
	}
}

func (h *PetHandler) Create(c *fiber.Ctx) error {
	seller := middleware.GetCurrentUser(c)
	if seller == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	input := domain.CreatePetInput{
		Name:         c.FormValue("name"),
		Species:      c.FormValue("species"),
		Breed:        c.FormValue("breed"),
		Gender:       c.FormValue("gender"),
		Description:  c.FormValue("description"),
		HealthInfo:   c.FormValue("health_info"),
		Requirements: c.FormValue("requirements"),
	}
	if v := c.FormValue("age_months"); v != "" {
		age, err := strconv.Atoi(v)
		if err != nil {
			return middleware.BadRequest("age_months must be a number")
		}
		input.AgeMonths = age
	}
	if v := c.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return middleware.BadRequest("price must be a number")
		}
		input.Price = price
	}

	var images []service.PetImage
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, file := range form.File["images"] {
			if file.Size > maxImageSize {
				return middleware.BadRequest("Each image must be less than 10MB")
			}
			mimeType := file.Header.Get("Content-Type")
			if mimeType == "" {
				mimeType = "application/octet-stream"
			}
			reader, err := file.Open()
			if err != nil {
				return middleware.BadRequest("Failed to read image")
			}
			defer reader.Close()

			images = append(images, service.PetImage{
				FileName: file.Filename,
				Size:     file.Size,
				MimeType: mimeType,
				Reader:   reader,
			})
		}
	}

	pet, err := h.petService.Create(c.Context(), seller, input, images)
	if err != nil {
		if err == service.ErrBusinessUnverified {
			return middleware.Forbidden("Business account is not approved")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(h.withImageURLs(pet))
}

func (h *PetHandler) List(c *fiber.Ctx) error {
	var filter domain.PetFilter
	if err := c.QueryParser(&filter); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	params := domain.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	result, err := h.petService.List(c.Context(), filter, params)
	if err != nil {
		return err
	}

	data := make([]petResponse, 0, len(result.Data))
	for i := range result.Data {
		data = append(data, h.withImageURLs(&result.Data[i]))
	}

	return c.JSON(fiber.Map{
		"data":        data,
		"page":        result.Page,
		"page_size":   result.PageSize,
		"total_items": result.TotalItems,
		"total_pages": result.TotalPages,
		"has_next":    result.HasNext,
		"has_prev":    result.HasPrev,
	})
}

func (h *PetHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid pet ID")
	}

	pet, err := h.petService.GetByID(c.Context(), id)
	if err != nil {
		if err == service.ErrPetNotFound {
			return middleware.NotFound("Pet not found")
		}
		return err
	}
	return c.JSON(h.withImageURLs(pet))
}

func (h *PetHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid pet ID")
	}

	var input domain.UpdatePetInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	pet, err := h.petService.Update(c.Context(), middleware.GetCurrentUserID(c), id, input)
	if err != nil {
		switch err {
		case service.ErrPetNotFound:
			return middleware.NotFound("Pet not found")
		case service.ErrNotPetOwner:
			return middleware.Forbidden("Only the seller may update this pet")
		case service.ErrInvalidTransition:
			return middleware.Conflict("Invalid status transition")
		}
		return err
	}
	return c.JSON(h.withImageURLs(pet))
}

func (h *PetHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid pet ID")
	}

	if err := h.petService.Delete(c.Context(), middleware.GetCurrentUserID(c), id); err != nil {
		switch err {
		case service.ErrPetNotFound:
			return middleware.NotFound("Pet not found")
		case service.ErrNotPetOwner:
			return middleware.Forbidden("Only the seller may delete this pet")
		}
		return err
	}
	return c.JSON(fiber.Map{"message": "Pet deleted"})
}

type petResponse struct {
	*domain.Pet
	ImageURLs []string `json:"image_urls"`
}

func (h *PetHandler) withImageURLs(pet *domain.Pet) petResponse {
	urls := make([]string, 0, len(pet.Images))
	for _, path := range pet.Images {
		urls = append(urls, h.mediaService.PublicURL(path))
	}
	return petResponse{Pet: pet, ImageURLs: urls}
}
