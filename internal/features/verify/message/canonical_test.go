package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-verifier-backend/internal/features/verify/models"
)

func TestBuildDeterministic(t *testing.T) {
	kinds := []models.VerificationKind{
		models.KindTwitterEcdsa,
		models.KindTwitterEcdsaV2,
		models.KindTwitterSolana,
		models.KindGithubEcdsa,
	}

	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			first := Build(kind, "alice")
			second := Build(kind, "alice")
			assert.Equal(t, first, second)
			assert.Equal(t, first.Bytes(), second.Bytes())
		})
	}
}

func TestBuildContents(t *testing.T) {
	tests := []struct {
		name     string
		kind     models.VerificationKind
		owner    string
		contents string
	}{
		{
			name:     "plain twitter ignores the handle",
			kind:     models.KindTwitterEcdsa,
			owner:    "alice",
			contents: "I'm verifying my Twitter account.",
		},
		{
			name:     "solana twitter uses the same literal",
			kind:     models.KindTwitterSolana,
			owner:    "alice",
			contents: "I'm verifying my Twitter account.",
		},
		{
			name:     "v2 twitter binds the handle",
			kind:     models.KindTwitterEcdsaV2,
			owner:    "alice",
			contents: "I'm verifying my Twitter account @alice.",
		},
		{
			name:     "github binds the username",
			kind:     models.KindGithubEcdsa,
			owner:    "octocat",
			contents: "I'm verifying my GitHub account octocat.",
		},
		{
			name:  "control characters change the signed bytes verbatim",
			kind:  models.KindTwitterEcdsaV2,
			owner:    "al\tice",
			contents: "I'm verifying my Twitter account @al\tice.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Build(tt.kind, tt.owner)
			assert.Equal(t, tt.contents, msg.Contents)
		})
	}
}

func TestTypedDataHashable(t *testing.T) {
	msg := Build(models.KindTwitterEcdsa, "")
	td := msg.TypedData()

	require.Equal(t, "Permit", td.PrimaryType)
	require.Contains(t, td.Types, "EIP712Domain")
	require.Contains(t, td.Types, "Permit")
	assert.Equal(t, msg.Contents, td.Message["contents"])
}

func TestBytesStableShape(t *testing.T) {
	msg := Build(models.KindTwitterSolana, "")
	assert.JSONEq(t,
		`{"domain":{"name":"Social Verifier","version":"1"},"message":{"contents":"I'm verifying my Twitter account."},"primaryType":"Permit"}`,
		string(msg.Bytes()))
}
