package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPluralize(t *testing.T) {
	assert.Equal(t, "line", Pluralize(1, "line", "lines"))
	assert.Equal(t, "lines", Pluralize(0, "line", "lines"))
	assert.Equal(t, "lines", Pluralize(7, "line", "lines"))
}
