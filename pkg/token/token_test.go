package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	m := NewManager("secret")
	id := uuid.New()

	signed, exp, err := m.Generate(id, "company")
	require.NoError(t, err)
	assert.InDelta(t, time.Now().Add(7*24*time.Hour).Unix(), exp, 5)

	claims, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.Subject)
	assert.Equal(t, "company", claims.Role)
}

func TestParseRejectsForeignSecret(t *testing.T) {
	signed, _, err := NewManager("one").Generate(uuid.New(), "student")
	require.NoError(t, err)

	_, err = NewManager("two").Parse(signed)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewManager("secret")
	signed, _, err := m.Generate(uuid.New(), "student")
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(TTL + time.Minute) }
	_, err = m.Parse(signed)
	assert.Error(t, err)
}
