package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("writing"))
	assert.True(t, IsValid("handbook"))
	assert.False(t, IsValid("furniture"))
	assert.False(t, IsValid(""))
}

func TestAll_CopyIsIndependent(t *testing.T) {
	all := All()
	assert.Len(t, all, 4)

	all[0].ID = "mutated"
	assert.Equal(t, "writing", All()[0].ID)
}
