package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Session      SessionRepository
	Pet          PetRepository
	Adoption     AdoptionRequestRepository
	Chat         ChatRepository
	Blog         BlogRepository
	Community    CommunityRepository
	Notification NotificationRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Session:      NewSessionRepository(db),
		Pet:          NewPetRepository(db),
		Adoption:     NewAdoptionRequestRepository(db),
		Chat:         NewChatRepository(db),
		Blog:         NewBlogRepository(db),
		Community:    NewCommunityRepository(db),
		Notification: NewNotificationRepository(db),
	}
}
