package models

import (
	"time"
)

type UserRole string

const (
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

type PresenceStatus string

const (
	StatusActive       PresenceStatus = "active"
	StatusBusy         PresenceStatus = "busy"
	StatusDoNotDisturb PresenceStatus = "dnd"
	StatusAway         PresenceStatus = "away"
)

// User is the identity record. The password column holds a bcrypt hash and is
// never serialized.
type User struct {
	ID        string `json:"id" gorm:"primaryKey;size:100"`
	Username  string `json:"username" gorm:"uniqueIndex;not null;size:150" validate:"required,max=150"`
	FirstName string `json:"first_name" gorm:"not null;size:150" validate:"required,max=150"`
	LastName  string `json:"last_name" gorm:"not null;size:150" validate:"required,max=150"`
	Email     string `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	Password  string `json:"-" gorm:"not null;size:255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations (cascade from User)
	Role      *Role      `json:"role,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Status    *Status    `json:"status,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Interests []Interest `json:"interests,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}

// FullName returns "First Last", the display form used across responses.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Role tags an identity as teacher or student. One per user, immutable after
// registration.
type Role struct {
	ID     string   `json:"id" gorm:"primaryKey;size:100"`
	Role   UserRole `json:"role" gorm:"not null;size:7;check:role IN ('teacher','student')" validate:"required,user_role"`
	UserID string   `json:"user_id" gorm:"uniqueIndex;not null;size:100"`
}

func (Role) TableName() string {
	return "roles"
}

// Status is the user's presence value, defaulted to active at registration.
type Status struct {
	ID     string         `json:"id" gorm:"primaryKey;size:100"`
	Status PresenceStatus `json:"status" gorm:"not null;size:6;default:active;check:status IN ('active','busy','dnd','away')" validate:"required,presence_status"`
	UserID string         `json:"user_id" gorm:"uniqueIndex;not null;size:100"`
}

func (Status) TableName() string {
	return "statuses"
}

// Interest is a lowercase, underscore-delimited tag on a student identity,
// e.g. data_analysis.
type Interest struct {
	ID       string `json:"id" gorm:"primaryKey;size:100"`
	Interest string `json:"interest" gorm:"not null;size:99" validate:"required,interest_tag"`
	UserID   string `json:"user_id" gorm:"index;not null;size:100"`
}

func (Interest) TableName() string {
	return "interests"
}
