package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pawmarket/internal/domain"
	"pawmarket/internal/middleware"
	"pawmarket/internal/repository"
	"pawmarket/internal/service"
)

type ChatHandler struct {
	chatService service.ChatService
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) Open(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("adoptionRequestId"))
	if err != nil {
		return middleware.BadRequest("Invalid adoption request ID")
	}

	chat, err := h.chatService.OpenChat(c.Context(), middleware.GetCurrentUserID(c), requestID)
	if err != nil {
		switch err {
		case service.ErrRequestNotFound:
			return middleware.NotFound("Adoption request not found")
		case service.ErrNotChatParty:
			return middleware.Forbidden("Only the buyer or the seller may open this chat")
		case service.ErrChatConflict:
			return middleware.Conflict("A chat already exists for this adoption request")
		case service.ErrChatRequestGone:
			return middleware.Conflict("Adoption request is no longer pending")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(chat)
}

func (h *ChatHandler) GetByRequest(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("adoptionRequestId"))
	if err != nil {
		return middleware.BadRequest("Invalid adoption request ID")
	}

	chat, err := h.chatService.GetByRequestID(c.Context(), middleware.GetCurrentUserID(c), requestID)
	if err != nil {
		switch err {
		case service.ErrChatNotFound:
			return middleware.NotFound("Chat not found")
		case service.ErrNotChatParty:
			return middleware.Forbidden("Only the buyer or the seller may view this chat")
		}
		return err
	}
	return c.JSON(chat)
}

func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	chatID, err := uuid.Parse(c.Params("chatId"))
	if err != nil {
		return middleware.BadRequest("Invalid chat ID")
	}

	caller := middleware.GetCurrentUser(c)
	if caller == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.SendMessageInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	msg, err := h.chatService.SendMessage(c.Context(), caller, chatID, input)
	if err != nil {
		switch err {
		case service.ErrChatNotFound:
			return middleware.NotFound("Chat not found")
		case service.ErrNotChatParty:
			return middleware.Forbidden("Only the buyer or the seller may message in this chat")
		case service.ErrEmptyMessage:
			return middleware.BadRequest("Message content is required")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(msg)
}

func (h *ChatHandler) Accept(c *fiber.Ctx) error {
	chatID, err := uuid.Parse(c.Params("chatId"))
	if err != nil {
		return middleware.BadRequest("Invalid chat ID")
	}

	result, err := h.chatService.Accept(c.Context(), middleware.GetCurrentUserID(c), chatID)
	if err != nil {
		switch err {
		case service.ErrChatNotFound:
			return middleware.NotFound("Chat not found")
		case service.ErrNotChatParty:
			return middleware.Forbidden("Only the buyer or the seller may accept in this chat")
		case service.ErrRequestNotFound:
			return middleware.NotFound("Adoption request not found")
		case repository.ErrPetUnavailable:
			return middleware.Conflict("Pet was already adopted through another request")
		}
		return err
	}
	return c.JSON(result)
}
