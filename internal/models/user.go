package models

import (
	"fmt"
	"strings"
	"time"
)

// UserType is the closed set of account kinds. Routing and API
// authorization switch over it exhaustively.
type UserType string

const (
	UserTypeIndividual UserType = "individual"
	UserTypeCompany    UserType = "company"
)

func ParseUserType(s string) (UserType, error) {
	switch UserType(strings.ToLower(strings.TrimSpace(s))) {
	case UserTypeIndividual:
		return UserTypeIndividual, nil
	case UserTypeCompany:
		return UserTypeCompany, nil
	default:
		return "", fmt.Errorf("unknown user type %q", s)
	}
}

func (t UserType) Valid() bool {
	switch t {
	case UserTypeIndividual, UserTypeCompany:
		return true
	default:
		return false
	}
}

// User mirrors the public.users row created by the auth signup trigger.
type User struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"column:email;type:text" json:"email"`
	UserType  UserType  `gorm:"column:user_type;type:text" json:"user_type"`
	CompanyID *string   `gorm:"column:company_id;type:uuid" json:"company_id,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) IsCompany() bool {
	return u != nil && u.UserType == UserTypeCompany && u.CompanyID != nil && *u.CompanyID != ""
}
