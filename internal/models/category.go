package models

// Category groups products. Products reference it by CategoryID; the
// reference is nullable and nulled on delete.
type Category struct {
	CategoryID uint   `json:"categoryId" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"not null;type:varchar(100)"`
}
