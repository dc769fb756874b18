package random

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase64URL(t *testing.T) {
	s, err := Base64URL(32)
	require.NoError(t, err)
	// 32 bytes encode to 44 base64 characters (with padding).
	assert.Len(t, s, 44)

	// Token must survive being placed in a URL path unescaped.
	assert.Equal(t, s, url.PathEscape(s))
}

func TestBase64URLUnique(t *testing.T) {
	a, err := Base64URL(32)
	require.NoError(t, err)
	b, err := Base64URL(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
