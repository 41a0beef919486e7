package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, s := range []string{"", "0", "-1", "abc", "1.5", "99999999999999999999999"} {
		_, err := ParseID(s)
		assert.Error(t, err, s)
	}
}
