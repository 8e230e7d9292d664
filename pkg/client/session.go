package client

import (
	"encoding/json"
	"sync"
)

const sessionKey = "currentUser"

// Storage is the persistent key-value store backing the session, the
// equivalent of the browser's local storage.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryStorage keeps values in process memory. Sessions stored here do not
// survive a restart.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (s *MemoryStorage) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// SessionUser is the sanitized user object held for the logged-in session.
// It never carries a password.
type SessionUser struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Role        string `json:"rol"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
}

// SessionStore holds the current user in memory mirrored to Storage. Writes
// persist synchronously, so memory and storage never disagree after SetUser
// returns. Reads fall back to storage when memory is empty, which restores
// the session after a restart.
type SessionStore struct {
	mu      sync.Mutex
	user    *SessionUser
	storage Storage

	// Last fetched lists, kept for local filtering between fetches. These
	// live in memory only, unlike the session they are not persisted.
	travels  []Travel
	bookings []Booking
}

func NewSessionStore(storage Storage) *SessionStore {
	return &SessionStore{storage: storage}
}

// SetUser replaces the current session. A nil user logs out and removes the
// persisted entry.
func (s *SessionStore) SetUser(user *SessionUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	if user == nil {
		return s.storage.Delete(sessionKey)
	}
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.storage.Set(sessionKey, string(data))
}

// User returns the current session user, or nil when anonymous.
func (s *SessionStore) User() *SessionUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil {
		return s.user
	}
	stored, ok := s.storage.Get(sessionKey)
	if !ok {
		return nil
	}
	var user SessionUser
	if err := json.Unmarshal([]byte(stored), &user); err != nil {
		// A corrupt entry is unrecoverable, drop it.
		_ = s.storage.Delete(sessionKey)
		return nil
	}
	s.user = &user
	return s.user
}

func (s *SessionStore) IsLoggedIn() bool {
	return s.User() != nil
}

func (s *SessionStore) IsAdmin() bool {
	user := s.User()
	return user != nil && user.Role == "ADMIN"
}

func (s *SessionStore) setTravels(travels []Travel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.travels = travels
}

// CachedTravels returns the travels from the last successful list fetch.
func (s *SessionStore) CachedTravels() []Travel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.travels
}

func (s *SessionStore) setBookings(bookings []Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = bookings
}

// CachedBookings returns the bookings from the last successful list fetch.
func (s *SessionStore) CachedBookings() []Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookings
}
