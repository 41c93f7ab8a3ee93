package session

import (
	"errors"
	"sync"

	"warehouseManagement/models"
)

// View is one of the four authenticated views a session can show.
type View string

const (
	ViewInventory View = "inventory"
	ViewAnalysis  View = "analysis"
	ViewPredict   View = "predict"
	ViewAdmin     View = "admin"
)

func (v View) Valid() bool {
	switch v {
	case ViewInventory, ViewAnalysis, ViewPredict, ViewAdmin:
		return true
	}
	return false
}

var (
	ErrNotLoggedIn = errors.New("not logged in")
	ErrUnknownView = errors.New("unknown view")
)

// Context is the transient per-session state: authentication status, current
// user and role, and the active view. It is never persisted.
//
// Any authenticated view can navigate to any other, including admin: the
// admin view is a legal navigation target for every role, and authorization
// is enforced when admin data is actually requested.
type Context struct {
	LoggedIn   bool        `json:"logged_in"`
	User       string      `json:"user"`
	Role       models.Role `json:"role"`
	ActiveView View        `json:"active_view"`
}

// Login marks the session authenticated and lands on the inventory view.
func (c *Context) Login(username string, role models.Role) {
	c.LoggedIn = true
	c.User = username
	c.Role = role
	c.ActiveView = ViewInventory
}

// SelectView transitions among the authenticated views.
func (c *Context) SelectView(v View) error {
	if !c.LoggedIn {
		return ErrNotLoggedIn
	}
	if !v.Valid() {
		return ErrUnknownView
	}
	c.ActiveView = v
	return nil
}

// Logout clears all session fields.
func (c *Context) Logout() {
	*c = Context{}
}

// Registry tracks one Context per user. All methods return value snapshots so
// callers never share the mutable state.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Context
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Context)}
}

func (r *Registry) Login(username string, role models.Role) Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.sessions[username]
	if !ok {
		c = &Context{}
		r.sessions[username] = c
	}
	c.Login(username, role)
	return *c
}

// Current returns the session for the user, or a fresh logged-out context if
// none exists yet.
func (r *Registry) Current(username string) Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.sessions[username]; ok {
		return *c
	}
	return Context{}
}

func (r *Registry) SelectView(username string, v View) (Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.sessions[username]
	if !ok {
		return Context{}, ErrNotLoggedIn
	}
	if err := c.SelectView(v); err != nil {
		return *c, err
	}
	return *c, nil
}

func (r *Registry) Logout(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.sessions[username]; ok {
		c.Logout()
	}
}
