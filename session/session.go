// Package session owns the operator's auth session: login and logout
// against the identity API, the persisted session slot, and the in-memory
// access token handed to every authenticated upstream call.
package session

import (
	"context"
	"log"
	"sync"

	"sixgo.GO/client"
	"sixgo.GO/localstore"
)

// AuthSlot is the local-storage slot holding the serialized session.
const AuthSlot = "6ixgo_auth"

// LoginRequest is the signin payload.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// loginData is the signin response payload.
type loginData struct {
	UserID                 string `json:"userId"`
	UserName               string `json:"userName"`
	UserRoles              string `json:"userRoles"`
	RememberMe             bool   `json:"rememberMe"`
	AccessToken            string `json:"accessToken"`
	AccessTokenExpiration  string `json:"accessTokenExpiration"`
	AccessTokenExp         string `json:"accessTokenExp"`
	RefreshToken           string `json:"refreshToken"`
	RefreshTokenExpiration string `json:"refreshTokenExpiration"`
	RefreshTokenExp        string `json:"refreshTokenExp"`
	Audience               string `json:"audience"`
}

// StoredSession is what survives restarts in the auth slot.
type StoredSession struct {
	AccessToken            string `json:"accessToken"`
	RefreshToken           string `json:"refreshToken"`
	UserName               string `json:"userName"`
	UserRoles              string `json:"userRoles"`
	AccessTokenExpiration  string `json:"accessTokenExpiration"`
	RefreshTokenExpiration string `json:"refreshTokenExpiration"`
}

// Manager is the process-wide session holder. Login and logout are the only
// writer paths; everything else reads.
type Manager struct {
	mu       sync.RWMutex
	store    localstore.Store
	identity *client.Client
	current  *StoredSession
}

// NewManager restores any persisted session from the slot. Absence or a
// corrupt slot means unauthenticated, not an error.
func NewManager(store localstore.Store) *Manager {
	m := &Manager{store: store}
	var stored StoredSession
	if localstore.GetJSON(store, AuthSlot, &stored) && stored.AccessToken != "" {
		m.current = &stored
		log.Printf("session: restored session for %s", stored.UserName)
	}
	return m
}

// SetIdentityClient wires the identity API client. Done after construction
// because the client's token source is this manager.
func (m *Manager) SetIdentityClient(c *client.Client) {
	m.identity = c
}

// AccessToken implements client.TokenSource.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.AccessToken
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated() bool {
	return m.AccessToken() != ""
}

// Current returns a copy of the active session, or nil.
func (m *Manager) Current() *StoredSession {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	cp := *m.current
	return &cp
}

// Login signs in against the identity API and persists the session.
func (m *Manager) Login(ctx context.Context, req LoginRequest) (*StoredSession, error) {
	var data loginData
	if err := m.identity.Post(ctx, "/account/signin", req, &data); err != nil {
		return nil, err
	}

	stored := &StoredSession{
		AccessToken:            data.AccessToken,
		RefreshToken:           data.RefreshToken,
		UserName:               data.UserName,
		UserRoles:              data.UserRoles,
		AccessTokenExpiration:  data.AccessTokenExpiration,
		RefreshTokenExpiration: data.RefreshTokenExpiration,
	}

	m.mu.Lock()
	m.current = stored
	m.mu.Unlock()

	if err := localstore.SetJSON(m.store, AuthSlot, stored); err != nil {
		log.Printf("session: persist failed (session stays in memory): %v", err)
	}
	log.Printf("session: %s logged in", stored.UserName)
	cp := *stored
	return &cp, nil
}

// Logout calls the identity API and tears the session down either way.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.identity.Post(ctx, "/account/logout", nil, nil); err != nil {
		log.Printf("session: upstream logout failed, logging out locally: %v", err)
	}
	m.Clear()
}

// Clear drops the in-memory token and the persisted slot. Also the 401 hook
// for every upstream client.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	if err := m.store.Delete(AuthSlot); err != nil {
		log.Printf("session: clear slot: %v", err)
	}
}
