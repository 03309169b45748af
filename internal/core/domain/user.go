package domain

import "time"

// User is one platform account as reported by the upstream directory.
type User struct {
	UserID       string     `json:"userId"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         string     `json:"role,omitempty"`
	IsVerified   bool       `json:"isVerified"`
	IsActive     bool       `json:"isActive"`
	AvatarURL    *string    `json:"avatarUrl"`
	IsPremium    *bool      `json:"isPremium"`
	ProviderName *string    `json:"providerName"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
}
