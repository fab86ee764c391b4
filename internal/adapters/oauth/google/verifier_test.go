package google

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func TestVerifier_Verify(t *testing.T) {
	var gotAudience string
	v := &Verifier{validate: func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		gotAudience = audience
		if token != "good" {
			return nil, assert.AnError
		}
		return &idtoken.Payload{Claims: map[string]any{
			"email":          "voter@example.com",
			"email_verified": true,
			"name":           "Somchai",
		}}, nil
	}}

	payload, err := v.Verify(context.Background(), "good", "client-id")
	require.NoError(t, err)
	assert.Equal(t, "client-id", gotAudience)
	assert.Equal(t, "voter@example.com", payload.Email)
	assert.Equal(t, "Somchai", payload.Name)

	_, err = v.Verify(context.Background(), "bad", "client-id")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestPayloadFromClaims(t *testing.T) {
	_, err := payloadFromClaims(map[string]any{"name": "no email"})
	assert.Error(t, err)

	_, err = payloadFromClaims(map[string]any{"email": "a@example.com", "email_verified": false})
	assert.ErrorIs(t, err, ErrEmailNotVerified)

	payload, err := payloadFromClaims(map[string]any{"email": "a@example.com"})
	require.NoError(t, err)
	assert.Empty(t, payload.Name)
}
