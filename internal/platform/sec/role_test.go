// Copyright (c) 2026 Clubbies. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/clubbies/internal/platform/sec"
)

/*
TestRole_AtLeast exercises the user < mod < admin hierarchy.
*/
func TestRole_AtLeast(t *testing.T) {
	tests := []struct {
		name     string
		role     sec.Role
		target   sec.Role
		expected bool
	}{
		{"admin_meets_admin", sec.RoleAdmin, sec.RoleAdmin, true},
		{"admin_meets_user", sec.RoleAdmin, sec.RoleUser, true},
		{"mod_meets_user", sec.RoleMod, sec.RoleUser, true},
		{"mod_below_admin", sec.RoleMod, sec.RoleAdmin, false},
		{"user_below_mod", sec.RoleUser, sec.RoleMod, false},
		{"unknown_below_everything", sec.Role("ghost"), sec.RoleUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.role.AtLeast(tt.target))
		})
	}
}

/*
TestRole_IsValid accepts the three known roles and nothing else.
*/
func TestRole_IsValid(t *testing.T) {
	assert.True(t, sec.RoleUser.IsValid())
	assert.True(t, sec.RoleMod.IsValid())
	assert.True(t, sec.RoleAdmin.IsValid())

	assert.False(t, sec.Role("").IsValid())
	assert.False(t, sec.Role("overlord").IsValid())
}
