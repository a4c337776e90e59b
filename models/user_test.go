package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableNames(t *testing.T) {
	tests := []struct {
		name  string
		table string
		want  string
	}{
		{"users", User{}.TableName(), "users"},
		{"orders", Order{}.TableName(), "orders"},
		{"order details", OrderDetail{}.TableName(), "order_details"},
		{"proofing orders", ProofingOrder{}.TableName(), "proofing_orders"},
		{"proofing order designs", ProofingOrderDesign{}.TableName(), "proofing_order_designs"},
		{"timeline", TimelineEntry{}.TableName(), "order_timeline_entries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.table)
		})
	}
}

func TestUserRoleValues(t *testing.T) {
	tests := []struct {
		name string
		role UserRole
	}{
		{"manager role", RoleManager},
		{"designer role", RoleDesigner},
		{"proofer role", RoleProofer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := User{
				Email: "test@example.com",
				Role:  tt.role,
			}
			assert.Equal(t, tt.role, user.Role, "Role should be set correctly")
		})
	}
}

func TestUserDefaultValues(t *testing.T) {
	user := User{Email: "new@example.com"}

	assert.Equal(t, "new@example.com", user.Email, "Email should be set")
	assert.Equal(t, UserRole(""), user.Role, "Role should be empty string by default in Go struct")
	assert.False(t, user.IsActive)
}
