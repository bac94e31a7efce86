package session

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

// CookieStorage adapts a gorilla session to Storage. Commit only marks the
// session dirty; Flush writes it and must run before the response headers
// are sent.
type CookieStorage struct {
	sess  *sessions.Session
	r     *http.Request
	w     http.ResponseWriter
	dirty bool
}

// Load reads the named session from store. When the cookie cannot be
// decoded a fresh session is returned together with the decode error.
func Load(store sessions.Store, r *http.Request, w http.ResponseWriter, name string) (*CookieStorage, error) {
	sess, err := store.Get(r, name)
	if sess == nil {
		sess = sessions.NewSession(store, name)
		sess.IsNew = true
	}
	return &CookieStorage{sess: sess, r: r, w: w}, err
}

func (c *CookieStorage) Get(key string) (string, bool) {
	v, ok := c.sess.Values[key].(string)
	return v, ok
}

func (c *CookieStorage) Set(key, value string) error {
	c.sess.Values[key] = value
	return nil
}

func (c *CookieStorage) Remove(key string) error {
	delete(c.sess.Values, key)
	return nil
}

func (c *CookieStorage) Commit() error {
	c.dirty = true
	return nil
}

func (c *CookieStorage) Dirty() bool { return c.dirty }

func (c *CookieStorage) Flush() error {
	if !c.dirty {
		return nil
	}
	c.dirty = false
	return c.sess.Save(c.r, c.w)
}

type destroyer interface {
	Destroy(ctx context.Context, id string) error
}

// Renew makes the next save issue a new server-side id and drops the
// record kept under the old one.
func (c *CookieStorage) Renew() error {
	old := c.sess.ID
	if old == "" {
		return nil
	}
	c.sess.ID = ""
	c.dirty = true
	if d, ok := c.sess.Store().(destroyer); ok {
		if err := d.Destroy(c.r.Context(), old); err != nil {
			return fmt.Errorf("drop old session: %w", err)
		}
	}
	return nil
}
