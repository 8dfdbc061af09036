package models

// User is a credential record. The password hash is never serialized.
type User struct {
	UserID        uint   `json:"userId" gorm:"primaryKey"`
	UserName      string `json:"userName" gorm:"uniqueIndex;not null;type:varchar(100)"`
	Email         string `json:"email" gorm:"type:varchar(255)"`
	PasswordHash  string `json:"-" gorm:"not null;type:varchar(255)"`
	SecurityStamp string `json:"-" gorm:"type:varchar(36)"`
	Roles         []Role `json:"roles,omitempty" gorm:"many2many:user_roles"`
}

// Role names are unique; membership is many-to-many via user_roles.
type Role struct {
	RoleID uint   `json:"roleId" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"uniqueIndex;not null;type:varchar(100)"`
}
