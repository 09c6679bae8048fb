package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserTableName(t *testing.T) {
	user := User{}
	assert.Equal(t, "users", user.TableName(), "Table name should be 'users'")
}

func TestUserStructFields(t *testing.T) {
	user := User{
		Email: "test@example.com",
		Role:  "customer",
	}

	assert.Equal(t, "test@example.com", user.Email, "Email should be set correctly")
	assert.Equal(t, "customer", user.Role, "Role should be set correctly")
}

func TestUserIsAdmin(t *testing.T) {
	tests := []struct {
		name string
		role string
		want bool
	}{
		{"admin role", "admin", true},
		{"customer role", "customer", false},
		{"empty role", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := User{Email: "test@example.com", Role: tt.role}
			assert.Equal(t, tt.want, user.IsAdmin())
		})
	}
}
