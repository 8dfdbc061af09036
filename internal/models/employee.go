package models

import "github.com/shopspring/decimal"

// Employee is a staff record. First and last name are required.
type Employee struct {
	EmployeeID uint            `json:"employeeId" gorm:"primaryKey"`
	FirstName  string          `json:"firstName" gorm:"not null;type:varchar(100)"`
	LastName   string          `json:"lastName" gorm:"not null;type:varchar(100)"`
	Role       string          `json:"role" gorm:"type:varchar(100)"`
	Salary     decimal.Decimal `json:"salary" gorm:"type:numeric"`
	ImageURL   string          `json:"imageUrl,omitempty"`
}
