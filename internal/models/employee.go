package models

// Employee represents a mail recipient in the company directory
type Employee struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"not null;size:255;index" json:"name"`
	Department string `gorm:"not null;size:100;index" json:"department"`
	Email      string `gorm:"uniqueIndex;not null;size:255" json:"email"`
}

// TableName returns the table name for Employee
func (Employee) TableName() string {
	return "employees"
}
