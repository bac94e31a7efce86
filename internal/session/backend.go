package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

var errNoSession = errors.New("session not found")

// backend persists encoded session values under a server-side id.
type backend interface {
	load(ctx context.Context, id string) ([]byte, error)
	save(ctx context.Context, id string, data []byte, ttl time.Duration) error
	delete(ctx context.Context, id string) error
}

// BackendStore is a gorilla sessions.Store that keeps values server-side
// and only a signed id in the cookie.
type BackendStore struct {
	Codecs  []securecookie.Codec
	Options *sessions.Options

	backend backend
}

func newBackendStore(b backend, keyPairs ...[]byte) *BackendStore {
	return &BackendStore{
		Codecs: securecookie.CodecsFromPairs(keyPairs...),
		Options: &sessions.Options{
			Path:     "/",
			MaxAge:   86400 * 30,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
		backend: b,
	}
}

func (s *BackendStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

func (s *BackendStore) New(r *http.Request, name string) (*sessions.Session, error) {
	sess := sessions.NewSession(s, name)
	opts := *s.Options
	sess.Options = &opts
	sess.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return sess, nil
	}
	var id string
	if err := securecookie.DecodeMulti(name, c.Value, &id, s.Codecs...); err != nil {
		return sess, err
	}

	data, err := s.backend.load(r.Context(), id)
	if errors.Is(err, errNoSession) {
		return sess, nil
	}
	if err != nil {
		return sess, fmt.Errorf("load session: %w", err)
	}
	if err := decodeValues(data, sess.Values); err != nil {
		return sess, err
	}
	sess.ID = id
	sess.IsNew = false
	return sess, nil
}

func (s *BackendStore) Save(r *http.Request, w http.ResponseWriter, sess *sessions.Session) error {
	if sess.Options.MaxAge < 0 {
		if sess.ID != "" {
			if err := s.backend.delete(r.Context(), sess.ID); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(sess.Name(), "", sess.Options))
		return nil
	}

	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	data, err := encodeValues(sess.Values)
	if err != nil {
		return err
	}
	ttl := time.Duration(sess.Options.MaxAge) * time.Second
	if err := s.backend.save(r.Context(), sess.ID, data, ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	encoded, err := securecookie.EncodeMulti(sess.Name(), sess.ID, s.Codecs...)
	if err != nil {
		return fmt.Errorf("encode session id: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(sess.Name(), encoded, sess.Options))
	return nil
}

// Destroy removes the record stored under id.
func (s *BackendStore) Destroy(ctx context.Context, id string) error {
	if err := s.backend.delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Only string values are stored; Storage never writes anything else.
func encodeValues(values map[interface{}]interface{}) ([]byte, error) {
	out := make(map[string]string, len(values))
	for k, v := range values {
		ks, ok := k.(string)
		if !ok {
			continue
		}
		if vs, ok := v.(string); ok {
			out[ks] = vs
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode session values: %w", err)
	}
	return data, nil
}

func decodeValues(data []byte, into map[interface{}]interface{}) error {
	var in map[string]string
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("decode session values: %w", err)
	}
	for k, v := range in {
		into[k] = v
	}
	return nil
}
