package auth

// Verifier checks whether a credential is allowed to moderate name changes
//
//go:generate mockgen -source=verifier.go -destination=../mocks/auth_verifier.go -package=mocks -mock_names=Verifier=MockVerifier
type Verifier interface {
	// IsValidAdminToken reports whether the token belongs to a moderator
	IsValidAdminToken(token string) bool
}

// keyVerifier validates moderator credentials against a static key set
type keyVerifier struct {
	keys map[string]bool
}

// NewKeyVerifier creates a verifier backed by a list of admin API keys
func NewKeyVerifier(keys []string) Verifier {
	keyMap := make(map[string]bool, len(keys))
	for _, key := range keys {
		if key != "" {
			keyMap[key] = true
		}
	}
	return &keyVerifier{keys: keyMap}
}

// IsValidAdminToken reports whether the token belongs to a moderator
func (v *keyVerifier) IsValidAdminToken(token string) bool {
	if token == "" || len(v.keys) == 0 {
		return false
	}
	return v.keys[token]
}
