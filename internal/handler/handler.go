package handler

import "pawmarket/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Pet          *PetHandler
	Adoption     *AdoptionHandler
	Chat         *ChatHandler
	Blog         *BlogHandler
	Community    *CommunityHandler
	Notification *NotificationHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Pet:          NewPetHandler(services.Pet, services.Media),
		Adoption:     NewAdoptionHandler(services.Adoption),
		Chat:         NewChatHandler(services.Chat),
		Blog:         NewBlogHandler(services.Blog),
		Community:    NewCommunityHandler(services.Community),
		Notification: NewNotificationHandler(services.Notification),
	}
}
