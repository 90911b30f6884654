// Package local is a file-backed identity provider. It mints
// anonymous identities with UUIDs and persists the active identity to
// a state file so consecutive CLI invocations keep addressing the same
// documents.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/tuuhea417/bear-365-saving/internal/identity"
)

type Provider struct {
	path string

	mu      sync.Mutex
	current *identity.Identity
	subs    map[int]func(*identity.Identity)
	nextSub int
}

// New loads the persisted identity from path, if any. An empty path
// keeps the provider purely in-memory.
func New(path string) (*Provider, error) {
	p := &Provider{path: path, subs: map[int]func(*identity.Identity){}}
	if path == "" {
		return p, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read identity file: %w", err)
	}
	var id identity.Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil, fmt.Errorf("decode identity file: %w", err)
	}
	if id.ID != "" {
		p.current = &id
	}
	return p, nil
}

func (p *Provider) Current() *identity.Identity {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil
	}
	id := *p.current
	return &id
}

func (p *Provider) OnChange(fn func(*identity.Identity)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

// SignInAnonymous establishes a fresh anonymous identity.
func (p *Provider) SignInAnonymous(_ context.Context) (*identity.Identity, error) {
	id := &identity.Identity{ID: uuid.NewString(), IsAnonymous: true, DisplayName: "Guest User"}
	if err := p.set(id); err != nil {
		return nil, err
	}
	return id, nil
}

// SignIn upgrades to an authenticated identity. The previous anonymous
// identity is discarded, not merged.
func (p *Provider) SignIn(_ context.Context, displayName, email string) (*identity.Identity, error) {
	id := &identity.Identity{ID: uuid.NewString(), DisplayName: displayName, Email: email}
	if err := p.set(id); err != nil {
		return nil, err
	}
	return id, nil
}

func (p *Provider) SignOut(_ context.Context) error {
	return p.set(nil)
}

func (p *Provider) set(id *identity.Identity) error {
	if err := p.persist(id); err != nil {
		return err
	}

	p.mu.Lock()
	p.current = id
	fns := make([]func(*identity.Identity), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(id)
	}
	return nil
}

func (p *Provider) persist(id *identity.Identity) error {
	if p.path == "" {
		return nil
	}
	if id == nil {
		if err := os.Remove(p.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove identity file: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return fmt.Errorf("create identity directory: %w", err)
	}
	raw, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := os.WriteFile(p.path, raw, 0600); err != nil {
		return fmt.Errorf("write identity file: %w", err)
	}
	return nil
}
