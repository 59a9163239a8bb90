package models

import "time"

// Staff is the profile of an employee or administrator account.
type Staff struct {
	ID             int64      `gorm:"primaryKey" json:"personalId"`
	AccountID      int64      `gorm:"not null;uniqueIndex" json:"usuarioId"`
	Account        *Account   `gorm:"constraint:OnDelete:CASCADE" json:"usuario,omitempty"`
	FirstName      string     `gorm:"size:50;not null" json:"nombre"`
	LastName       string     `gorm:"size:50;not null" json:"apellidoPaterno"`
	SecondLastName *string    `gorm:"size:50" json:"apellidoMaterno,omitempty"`
	Position       *string    `gorm:"size:50" json:"puesto,omitempty"`
	HireDate       *time.Time `gorm:"type:date" json:"fechaContratacion,omitempty"`
}

func (Staff) TableName() string { return "staff" }
