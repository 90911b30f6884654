package bridge

import (
	"context"

	"github.com/tuuhea417/bear-365-saving/internal/identity"
	applog "github.com/tuuhea417/bear-365-saving/internal/log"
)

// Controller reacts to identity-provider change events and keeps
// exactly one identity driving the bridge. When no identity exists at
// startup it establishes a fallback anonymous one; if even that fails
// the system continues in a degraded in-memory mode.
type Controller struct {
	provider identity.Provider
	bridge   *Bridge
	logger   *applog.Logger

	unsub func()
}

func NewController(provider identity.Provider, b *Bridge, logger *applog.Logger) *Controller {
	return &Controller{
		provider: provider,
		bridge:   b,
		logger:   logger.WithComponent("identity"),
	}
}

// Start subscribes to provider changes and establishes an identity.
// Every change — including a transition between two non-nil
// identities, such as an anonymous to authenticated upgrade — is
// republished to the bridge as a full identity switch.
func (c *Controller) Start(ctx context.Context) {
	c.unsub = c.provider.OnChange(func(ident *identity.Identity) {
		if ident == nil {
			c.logger.Info("Identity lost")
		} else {
			c.logger.Info("Identity changed",
				"user_id", ident.ID,
				"anonymous", ident.IsAnonymous)
		}
		c.bridge.SetIdentity(ident)
	})

	if current := c.provider.Current(); current != nil {
		c.bridge.SetIdentity(current)
		return
	}

	if _, err := c.provider.SignInAnonymous(ctx); err != nil {
		// Degraded mode: the ledger stays usable in memory, nothing is
		// persisted or synced until an identity appears.
		c.logger.Error("Anonymous sign-in failed, continuing without persistence", "error", err)
	}
}

// Stop detaches the controller and the bridge.
func (c *Controller) Stop() {
	if c.unsub != nil {
		c.unsub()
		c.unsub = nil
	}
	c.bridge.SetIdentity(nil)
}
