package models

// Customer is referenced by orders; the reference is nullable and nulled
// when the customer is deleted.
type Customer struct {
	CustomerID uint   `json:"customerId" gorm:"primaryKey"`
	FirstName  string `json:"firstName" gorm:"not null;type:varchar(100)"`
	LastName   string `json:"lastName" gorm:"not null;type:varchar(100)"`
	Email      string `json:"email,omitempty" gorm:"type:varchar(255)"`
	Phone      string `json:"phone" gorm:"type:varchar(50)"`
}
