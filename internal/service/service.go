package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"pawmarket/internal/config"
	"pawmarket/internal/realtime"
	"pawmarket/internal/repository"
)

type Services struct {
	Auth         AuthService
	User         UserService
	Pet          PetService
	Media        MediaService
	Adoption     AdoptionService
	Chat         ChatService
	Blog         BlogService
	Community    CommunityService
	Notification NotificationService
	Email        EmailService
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, hub *realtime.Hub, cfg *config.Config) *Services {
	emailService := NewEmailService(cfg)
	mediaService := NewMediaService(minioClient, cfg)
	notificationService := NewNotificationService(repos.Notification)

	authService := NewAuthService(repos.User, repos.Session, emailService, cfg)
	userService := NewUserService(repos.User, repos.Session)
	petService := NewPetService(repos.Pet, repos.User, mediaService, redis)
	adoptionService := NewAdoptionService(repos.Adoption, repos.Pet, repos.User, notificationService)
	chatService := NewChatService(repos.Chat, repos.Adoption, repos.Pet, repos.User, notificationService, emailService, hub)
	blogService := NewBlogService(repos.Blog, repos.User, mediaService)
	communityService := NewCommunityService(repos.Community, repos.User, mediaService)

	return &Services{
		Auth:         authService,
		User:         userService,
		Pet:          petService,
		Media:        mediaService,
		Adoption:     adoptionService,
		Chat:         chatService,
		Blog:         blogService,
		Community:    communityService,
		Notification: notificationService,
		Email:        emailService,
	}
}
