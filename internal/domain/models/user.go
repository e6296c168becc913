package models

import (
	"net/url"
	"time"
)

type UserType string

const (
	CandidateUser UserType = "candidate"
	CompanyUser   UserType = "company"
)

func (t UserType) IsValid() bool {
	return t == CandidateUser || t == CompanyUser
}

type User struct {
	ID           int64    `gorm:"primaryKey"`
	Name         string   `gorm:"not null"`
	Email        string   `gorm:"uniqueIndex;not null"`
	PasswordHash string   `gorm:"not null"`
	Type         UserType `gorm:"not null;index"`
	Avatar       string
	ProfilePhoto string
	CreatedAt    time.Time
}

// InitialsAvatarURL builds the generated avatar used when a user has no picture.
func InitialsAvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=7c3aed&color=fff"
}

// DisplayAvatar prefers an uploaded photo, then the stored avatar, then the generated one.
func DisplayAvatar(name, profilePhoto, avatar string) string {
	if profilePhoto != "" {
		return profilePhoto
	}
	if avatar != "" {
		return avatar
	}
	return InitialsAvatarURL(name)
}

func (u *User) DisplayAvatar() string {
	return DisplayAvatar(u.Name, u.ProfilePhoto, u.Avatar)
}

type PublicUser struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Type      UserType  `json:"type"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Type:      u.Type,
		Avatar:    u.DisplayAvatar(),
		CreatedAt: u.CreatedAt,
	}
}
