// Package message builds the canonical proof message a user signs. Signer
// and verifier must construct it byte-identically from the same inputs; the
// whole recovery step depends on that.
package message

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"social-verifier-backend/internal/features/verify/models"
)

const (
	domainName    = "Social Verifier"
	domainVersion = "1"

	twitterContents = "I'm verifying my Twitter account."
	// Handle-bound variants interpolate the account name verbatim. No
	// escaping: an unusual handle changes the signed bytes, which binds the
	// exact string.
	twitterHandleContents = "I'm verifying my Twitter account @%s."
	githubContents        = "I'm verifying my GitHub account %s."
)

// Canonical is the structured, versioned proof message.
type Canonical struct {
	DomainName    string
	DomainVersion string
	Contents      string
}

// Build constructs the canonical message for a verification kind. For the
// handle-bound kinds, owner must be the account name resolved from the
// provider, not caller input. Pure function; equal inputs give byte-equal
// encodings.
func Build(kind models.VerificationKind, owner string) Canonical {
	var contents string
	switch kind {
	case models.KindTwitterEcdsaV2:
		contents = fmt.Sprintf(twitterHandleContents, owner)
	case models.KindGithubEcdsa:
		contents = fmt.Sprintf(githubContents, owner)
	default:
		contents = twitterContents
	}
	return Canonical{
		DomainName:    domainName,
		DomainVersion: domainVersion,
		Contents:      contents,
	}
}

// TypedData returns the EIP-712 structure hashed on the ECDSA recovery path.
func (c Canonical) TypedData() apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": []apitypes.Type{
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
			},
			"Permit": []apitypes.Type{
				{Name: "contents", Type: "string"},
			},
		},
		PrimaryType: "Permit",
		Domain: apitypes.TypedDataDomain{
			Name:    c.DomainName,
			Version: c.DomainVersion,
		},
		Message: apitypes.TypedDataMessage{
			"contents": c.Contents,
		},
	}
}

type wireDomain struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type wireMessage struct {
	Contents string `json:"contents"`
}

type wirePayload struct {
	Domain      wireDomain  `json:"domain"`
	Message     wireMessage `json:"message"`
	PrimaryType string      `json:"primaryType"`
}

// Bytes returns the stable JSON encoding signed on the ed25519 path. Field
// order is fixed by the struct, so the output is deterministic.
func (c Canonical) Bytes() []byte {
	payload := wirePayload{
		Domain:      wireDomain{Name: c.DomainName, Version: c.DomainVersion},
		Message:     wireMessage{Contents: c.Contents},
		PrimaryType: "Permit",
	}
	b, _ := json.Marshal(payload)
	return b
}
