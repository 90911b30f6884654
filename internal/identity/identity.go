// Package identity defines the port for the external identity
// provider. The core only reads ID and IsAnonymous; the rest is
// display metadata carried through for the presentation layer.
package identity

import "context"

// Identity is the signed-in or anonymous principal that scopes all
// four data collections.
type Identity struct {
	ID          string `json:"id"`
	IsAnonymous bool   `json:"isAnonymous"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

// Provider supplies the current identity and change notifications.
// Callbacks receive nil when the identity is lost; a non-nil to
// non-nil transition is a full identity switch, never a merge.
type Provider interface {
	Current() *Identity
	OnChange(fn func(*Identity)) (unsubscribe func())
	SignInAnonymous(ctx context.Context) (*Identity, error)
	SignOut(ctx context.Context) error
}
