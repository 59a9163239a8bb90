package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	customer := &Session{UserID: 1, Role: "cliente"}
	admin := &Session{UserID: 2, Role: "admin"}

	tests := []struct {
		name    string
		session *Session
		roles   []string
		want    Decision
	}{
		{"no session redirects to login", nil, []string{"admin"}, Decision{Redirect: RedirectLogin}},
		{"no session without role list still redirects to login", nil, nil, Decision{Redirect: RedirectLogin}},
		{"nil role list admits any session", customer, nil, Decision{Allowed: true}},
		{"listed role is admitted", admin, []string{"empleado", "admin"}, Decision{Allowed: true}},
		{"unlisted role goes to root", customer, []string{"admin"}, Decision{Redirect: RedirectRoot}},
		{"empty role list admits nobody", admin, []string{}, Decision{Redirect: RedirectRoot}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.session, tt.roles))
		})
	}
}

func TestActsForCustomer(t *testing.T) {
	own := int64(7)
	customer := &Session{Role: "cliente", CustomerID: &own}
	staff := &Session{Role: "empleado"}

	assert.True(t, customer.ActsForCustomer("cliente", 7))
	assert.False(t, customer.ActsForCustomer("cliente", 8))
	assert.True(t, staff.ActsForCustomer("cliente", 8))
	assert.False(t, (*Session)(nil).ActsForCustomer("cliente", 7))
	assert.False(t, (&Session{Role: "cliente"}).ActsForCustomer("cliente", 7))
}

func TestHasRole(t *testing.T) {
	s := &Session{Role: "admin"}
	assert.True(t, s.HasRole("empleado", "admin"))
	assert.False(t, s.HasRole("cliente"))
	assert.False(t, (*Session)(nil).HasRole("admin"))
}
