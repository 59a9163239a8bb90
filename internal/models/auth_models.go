package models

import (
	"strings"
	"time"
)

// Roles carried by accounts and session tokens.
const (
	RoleCustomer = "cliente"
	RoleStaff    = "empleado"
	RoleAdmin    = "admin"
)

// StaffRoles are the roles allowed into back-office routes.
var StaffRoles = []string{RoleStaff, RoleAdmin}

// NormalizeRole lowercases a role and maps the English names used by older clients.
func NormalizeRole(role string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case RoleCustomer, "customer", "client":
		return RoleCustomer, true
	case RoleStaff, "staff", "employee":
		return RoleStaff, true
	case RoleAdmin, "administrator", "administrador":
		return RoleAdmin, true
	}
	return "", false
}

// Account is the login identity shared by customers and staff.
type Account struct {
	ID           int64     `gorm:"primaryKey" json:"usuarioId"`
	Email        string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"size:20;not null" json:"rol"`
	Active       bool      `gorm:"not null;default:true" json:"activo"`
	CreatedAt    time.Time `json:"fechaRegistro"`
}
