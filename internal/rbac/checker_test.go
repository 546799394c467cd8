package rbac

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckerDefaults(t *testing.T) {
	c := NewChecker(nil)

	assert.True(t, c.Has("student", "exam:view"))
	assert.True(t, c.Has("student", "attempt:submit"))
	assert.False(t, c.Has("student", "exam:manage"))
	assert.False(t, c.Has("student", "question:import"))

	assert.True(t, c.Has("admin", "exam:manage"))
	assert.True(t, c.Has("admin", "anything:at-all"))

	assert.False(t, c.Has("", "exam:view"))
	assert.False(t, c.Has("ghost", "exam:view"))
}

func TestCheckerWildcardPrefix(t *testing.T) {
	c := NewChecker(map[string][]string{"curator": {"question:*"}})
	assert.True(t, c.Has("curator", "question:manage"))
	assert.True(t, c.Has("curator", "question:import"))
	assert.False(t, c.Has("curator", "exam:manage"))
}

func TestRoleContextRoundTrip(t *testing.T) {
	ctx := WithRole(context.Background(), "admin")
	assert.Equal(t, "admin", RoleFromContext(ctx))
	assert.Equal(t, "", RoleFromContext(context.Background()))
}
