package session

import "context"

// Context is the authentication state handed to the command layer. It is
// built once at startup and only changes through Login and Logout.
type Context struct {
	store         *Store
	authenticated bool
}

func NewContext(ctx context.Context, store *Store) *Context {
	return &Context{
		store:         store,
		authenticated: store.Check(ctx),
	}
}

func (c *Context) Authenticated() bool {
	return c.authenticated
}

func (c *Context) Require() error {
	if !c.authenticated {
		return ErrNotAuthenticated
	}
	return nil
}

func (c *Context) Login(ctx context.Context, candidate string) bool {
	if !c.store.Login(ctx, candidate) {
		return false
	}
	c.authenticated = true
	return true
}

func (c *Context) Logout(ctx context.Context) error {
	c.authenticated = false
	return c.store.Logout(ctx)
}
