package models

// Customer is the profile of an account with role cliente.
type Customer struct {
	ID              int64    `gorm:"primaryKey" json:"clienteId"`
	AccountID       int64    `gorm:"not null;uniqueIndex" json:"usuarioId"`
	Account         *Account `gorm:"constraint:OnDelete:CASCADE" json:"usuario,omitempty"`
	FirstName       string   `gorm:"size:50;not null" json:"nombre"`
	LastName        string   `gorm:"size:50;not null" json:"apellidoPaterno"`
	SecondLastName  *string  `gorm:"size:50" json:"apellidoMaterno,omitempty"`
	ShippingAddress *string  `gorm:"size:255" json:"direccionEnvio,omitempty"`
	Phone           *string  `gorm:"size:20" json:"telefono,omitempty"`
}

// PeopleFilters is shared by the customer and staff listings.
type PeopleFilters struct {
	Search   string
	Page     int
	PageSize int
}
