package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"user_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`

	// Regular profile
	FirstName *string `json:"first_name,omitempty" db:"first_name"`
	LastName  *string `json:"last_name,omitempty" db:"last_name"`

	// Business profile
	BusinessName  *string `json:"business_name,omitempty" db:"business_name"`
	BusinessType  *string `json:"business_type,omitempty" db:"business_type"`
	Address       *string `json:"address,omitempty" db:"address"`
	LicenseNumber *string `json:"license_number,omitempty" db:"license_number"`
	TaxID         *string `json:"tax_id,omitempty" db:"tax_id"`

	VerificationStatus string  `json:"verification_status" db:"verification_status"`
	AverageRating      float64 `json:"average_rating" db:"average_rating"`
	RatingCount        int     `json:"rating_count" db:"rating_count"`

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}

type UserRole string

const (
	RoleRegular  UserRole = "regular"
	RoleBusiness UserRole = "business"
)

func (r UserRole) IsValid() bool {
	return r == RoleRegular || r == RoleBusiness
}

type BusinessType string

const (
	BusinessShelter BusinessType = "shelter"
	BusinessShop    BusinessType = "shop"
)

func (t BusinessType) IsValid() bool {
	return t == BusinessShelter || t == BusinessShop
}

const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	BusinessName  string `json:"business_name"`
	BusinessType  string `json:"business_type"`
	Address       string `json:"address"`
	LicenseNumber string `json:"license_number"`
	TaxID         string `json:"tax_id"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileInput struct {
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	BusinessName *string `json:"business_name,omitempty"`
	Address      *string `json:"address,omitempty"`
}

type Rating struct {
	ID        uuid.UUID `json:"id" db:"rating_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	RaterID   uuid.UUID `json:"rater_id" db:"rater_id"`
	Value     int       `json:"value" db:"value"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type RateUserInput struct {
	Value int `json:"value"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Summary is the public slice of a user attached to read models.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:            u.ID,
		Name:          u.DisplayName(),
		Role:          u.Role,
		AverageRating: u.AverageRating,
	}
}

func (u *User) IsBusiness() bool {
	return u.Role == string(RoleBusiness)
}

func (u *User) DisplayName() string {
	if u.IsBusiness() && u.BusinessName != nil {
		return *u.BusinessName
	}
	name := ""
	if u.FirstName != nil {
		name = *u.FirstName
	}
	if u.LastName != nil {
		if name != "" {
			name += " "
		}
		name += *u.LastName
	}
	if name == "" {
		name = u.Email
	}
	return name
}
