package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pawmarket/internal/domain"
	"pawmarket/internal/middleware"
	"pawmarket/internal/service"
)

type AdoptionHandler struct {
	adoptionService service.AdoptionService
}

func NewAdoptionHandler(adoptionService service.AdoptionService) *AdoptionHandler {
	return &AdoptionHandler{adoptionService: adoptionService}
}

func (h *AdoptionHandler) Create(c *fiber.Ctx) error {
	requester := middleware.GetCurrentUser(c)
	if requester == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.CreateAdoptionRequestInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	req, err := h.adoptionService.CreateRequest(c.Context(), requester, input)
	if err != nil {
		switch err {
		case service.ErrPetNotFound:
			return middleware.NotFound("Pet not found")
		case service.ErrDuplicateRequest:
			return middleware.Conflict("A pending request for this pet already exists")
		case service.ErrCannotAdoptOwnPet:
			return middleware.Forbidden("Sellers cannot request their own pets")
		case service.ErrPetNotAdoptable:
			return middleware.Conflict("Pet is not available for adoption")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(req)
}

// ListForSeller serves GET /adoption-requests?sellerId=. Sellers may only
// inspect their own queue.
func (h *AdoptionHandler) ListForSeller(c *fiber.Ctx) error {
	sellerIDParam := c.Query("sellerId")
	if sellerIDParam == "" {
		return middleware.BadRequest("sellerId query parameter is required")
	}
	sellerID, err := uuid.Parse(sellerIDParam)
	if err != nil {
		return middleware.BadRequest("Invalid sellerId")
	}

	if middleware.GetCurrentUserID(c) != sellerID {
		return middleware.Forbidden("Cannot view another seller's requests")
	}

	requests, err := h.adoptionService.ListBySeller(c.Context(), sellerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requests})
}

func (h *AdoptionHandler) ListForCurrentUser(c *fiber.Ctx) error {
	requests, err := h.adoptionService.ListByRequester(c.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requests})
}

// Update serves PATCH /adoption-requests/:id. The only direct transition is
// the seller rejecting a pending request; approval happens through the chat's
// dual acceptance.
func (h *AdoptionHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	var input domain.UpdateAdoptionRequestInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Status != domain.RequestRejected {
		return middleware.BadRequest("Only rejection is allowed here; approval requires both parties to accept in the chat")
	}

	req, err := h.adoptionService.Reject(c.Context(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		switch err {
		case service.ErrRequestNotFound:
			return middleware.NotFound("Adoption request not found")
		case service.ErrNotRequestSeller:
			return middleware.Forbidden("Only the seller may decide this request")
		case service.ErrRequestSettled:
			return middleware.Conflict("Adoption request is no longer pending")
		}
		return err
	}
	return c.JSON(req)
}
