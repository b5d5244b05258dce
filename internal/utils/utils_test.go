package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserContextRoundTrip(t *testing.T) {
	ctx := SetUserContext(context.Background(), "user-1", "a@b.edu", "ADMIN")

	id, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "user-1", id)
	assert.Equal(t, "a@b.edu", GetUserEmailFromContext(ctx))
	assert.Equal(t, "ADMIN", GetUserRoleFromContext(ctx))
}

func TestUserContext_Missing(t *testing.T) {
	id, ok := GetUserIDFromContext(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "", id)
	assert.Equal(t, "", GetUserRoleFromContext(context.Background()))
}
