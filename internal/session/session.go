// Package session keeps the signed-in user, bearer token, cart and pending
// notice for one browser or CLI user on top of a pluggable key/value Storage.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/soundplus/storefront/internal/models"
)

const (
	KeyUser  = "user"
	KeyToken = "token"
	KeyCart  = "cart"
	KeyFlash = "flash"
)

// MaxCartLines caps distinct products in a cart so it fits a session cookie.
const MaxCartLines = 10

var ErrCartFull = errors.New("cart is full")

type Session struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	Token    string      `json:"-"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == models.RoleAdmin
}

// Storage is a string key/value area. Implementations that buffer writes
// also implement Committer.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

type Committer interface {
	Commit() error
}

// Renewer is implemented by storages whose key is handed to the client and
// can be rotated.
type Renewer interface {
	Renew() error
}

const (
	NoticeSuccess = "success"
	NoticeError   = "error"
	NoticeInfo    = "info"
)

type Notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type Store struct {
	storage Storage
	now     func() time.Time
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage, now: time.Now}
}

// Session returns the signed-in user. A stored session whose token is an
// expired JWT counts as absent.
func (s *Store) Session() (*Session, bool) {
	raw, ok := s.storage.Get(KeyUser)
	if !ok || raw == "" {
		return nil, false
	}
	token, ok := s.storage.Get(KeyToken)
	if !ok || token == "" {
		return nil, false
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, false
	}
	if TokenExpired(token, s.now()) {
		return nil, false
	}
	sess.Token = token
	return &sess, true
}

// SetSession persists sess; nil clears the user and token keys.
func (s *Store) SetSession(sess *Session) error {
	if sess == nil {
		if err := s.storage.Remove(KeyUser); err != nil {
			return fmt.Errorf("remove user: %w", err)
		}
		if err := s.storage.Remove(KeyToken); err != nil {
			return fmt.Errorf("remove token: %w", err)
		}
		return s.commit()
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.storage.Set(KeyUser, string(data)); err != nil {
		return fmt.Errorf("set user: %w", err)
	}
	if err := s.storage.Set(KeyToken, sess.Token); err != nil {
		return fmt.Errorf("set token: %w", err)
	}
	return s.commit()
}

// Renew rotates the storage key, if the storage has one. Call it before a
// privilege change such as login.
func (s *Store) Renew() error {
	if r, ok := s.storage.(Renewer); ok {
		return r.Renew()
	}
	return nil
}

func (s *Store) Logout() error {
	return s.SetSession(nil)
}

// DropExpired clears a stored session whose token has expired and reports
// whether it did.
func (s *Store) DropExpired() (bool, error) {
	token, ok := s.storage.Get(KeyToken)
	if !ok || token == "" || !TokenExpired(token, s.now()) {
		return false, nil
	}
	return true, s.Logout()
}

func (s *Store) Notify(kind, message string) error {
	data, err := json.Marshal(Notice{Kind: kind, Message: message})
	if err != nil {
		return err
	}
	if err := s.storage.Set(KeyFlash, string(data)); err != nil {
		return fmt.Errorf("set notice: %w", err)
	}
	return s.commit()
}

// TakeNotice returns and removes the pending notice.
func (s *Store) TakeNotice() (*Notice, error) {
	raw, ok := s.storage.Get(KeyFlash)
	if !ok || raw == "" {
		return nil, nil
	}
	if err := s.storage.Remove(KeyFlash); err != nil {
		return nil, fmt.Errorf("remove notice: %w", err)
	}
	if err := s.commit(); err != nil {
		return nil, err
	}
	var n Notice
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return nil, fmt.Errorf("decode notice: %w", err)
	}
	return &n, nil
}

func (s *Store) Cart() []models.CartItem {
	raw, ok := s.storage.Get(KeyCart)
	if !ok || raw == "" {
		return nil
	}
	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}

func (s *Store) CartCount() int {
	n := 0
	for _, it := range s.Cart() {
		n += it.Quantity
	}
	return n
}

// AddToCart merges item into an existing line with the same product.
func (s *Store) AddToCart(item models.CartItem) error {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	items := s.Cart()
	merged := false
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			items[i].Price = item.Price
			items[i].Name = item.Name
			merged = true
			break
		}
	}
	if !merged {
		if len(items) >= MaxCartLines {
			return ErrCartFull
		}
		items = append(items, item)
	}
	return s.saveCart(items)
}

func (s *Store) RemoveFromCart(productID string) error {
	items := s.Cart()
	out := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return s.saveCart(out)
}

func (s *Store) saveCart(items []models.CartItem) error {
	if len(items) == 0 {
		if err := s.storage.Remove(KeyCart); err != nil {
			return fmt.Errorf("remove cart: %w", err)
		}
		return s.commit()
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.storage.Set(KeyCart, string(data)); err != nil {
		return fmt.Errorf("set cart: %w", err)
	}
	return s.commit()
}

func (s *Store) commit() error {
	if c, ok := s.storage.(Committer); ok {
		if err := c.Commit(); err != nil {
			return fmt.Errorf("commit session: %w", err)
		}
	}
	return nil
}
