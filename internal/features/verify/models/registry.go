package models

// Binding is one verified (address, kind) sub-record inside the registry
// document. The twitter and github shapes share one struct; unused fields
// are omitted from the encoded form.
type Binding struct {
	Timestamp int64  `json:"timestamp"`
	TweetID   string `json:"tweetID,omitempty"`
	Handle    string `json:"handle,omitempty"`
	Username  string `json:"username,omitempty"`
	GistID    string `json:"gist_id,omitempty"`
	UserID    int64  `json:"user_id,omitempty"`
}

// Owner returns the social identity the binding claims, regardless of shape.
func (b *Binding) Owner() string {
	if b.Handle != "" {
		return b.Handle
	}
	return b.Username
}

// AddressRecord holds the per-kind sub-records of one address. Keyed by kind
// string so sub-records of kinds this build does not know survive a
// decode/encode round trip.
type AddressRecord map[string]*Binding

// Registry is the shared verified-address document: address -> record.
type Registry map[string]AddressRecord

// Responses returned by the verify endpoints.

type TwitterVerifyResponse struct {
	Handle string `json:"handle"`
}

type GithubVerifyResponse struct {
	Username string `json:"username"`
}

type ErrorResponse struct {
	ErrorText string `json:"errorText"`
}
