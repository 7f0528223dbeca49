package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
)

// swagger:model User
type User struct {
	BaseModel
	Username  string          `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email     string          `gorm:"size:254;index" json:"email"`
	Password  string          `gorm:"size:100;not null" json:"-"`
	Role      UserRole        `gorm:"size:20;default:'student';not null" json:"role"`
	FirstName string          `gorm:"size:150" json:"firstName"`
	LastName  string          `gorm:"size:150" json:"lastName"`
	LastLogin *time.Time      `json:"lastLogin"`
	Profile   *StudentProfile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsTeacher() bool {
	return u.Role == Teacher
}
