// models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"p9e.in/brokerdesk/pkg/tabular"
)

// Role is the account's access level. Closed set; anything else is rejected
// on create/update.
type Role string

const (
	RoleBroker   Role = "broker"
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleGuest    Role = "guest"
)

var Roles = []string{
	string(RoleBroker), string(RoleCustomer), string(RoleAdmin),
	string(RoleStaff), string(RoleGuest),
}

func (r Role) Valid() bool {
	for _, v := range Roles {
		if string(r) == v {
			return true
		}
	}
	return false
}

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string     `gorm:"size:100;not null" json:"name"`
	Email        string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'guest'" json:"role"`
	Disabled     bool       `gorm:"default:false" json:"disabled"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

// UserSchema maps the user list view's column labels to filter semantics.
func UserSchema() tabular.Schema {
	return tabular.Schema{
		Columns: map[string]tabular.Column{
			"Name":  {Field: "name", Kind: tabular.TextContains},
			"Email": {Field: "email", Kind: tabular.TextContains},
			"Role":  {Field: "role", Kind: tabular.EnumEquals, Enum: Roles},
		},
		SearchFields: []string{"name", "email"},
		DefaultOrder: "created_at DESC",
	}
}
