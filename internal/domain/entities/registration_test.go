package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistrationComplete(t *testing.T) {
	assert.True(t, Registration{Activity: "Chess Club", Email: "a@b.com"}.Complete())
	assert.True(t, Registration{Activity: "Chess Club ", Email: " "}.Complete())
	assert.False(t, Registration{Activity: "Chess Club"}.Complete())
	assert.False(t, Registration{Email: "a@b.com"}.Complete())
}
