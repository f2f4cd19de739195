package store

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"sharebox/config"
	"sharebox/db"
	"sharebox/models"
	"sharebox/utils"
)

// Keys under which the catalog is persisted.
const (
	KeyProducts = "beusharebox_products"
	KeyUser     = "beusharebox_user"
	KeyFilters  = "beusharebox_filters"
)

const defaultDeleteConfirmTTL = 5 * time.Minute

// Toaster receives transient user-facing messages. It must not block.
type Toaster interface {
	Toast(severity models.Severity, message string)
}

type subscriber struct {
	id uint64
	fn func()
}

// Store is the authoritative in-memory catalog: products, the local user
// profile and the active filters. Every successful mutation notifies the
// subscribers and then writes all three keys to the backend.
type Store struct {
	// opMu serializes whole operations (mutate, notify, persist).
	opMu sync.Mutex

	mu       sync.RWMutex // Guards products, user and filters
	products []models.Product
	user     models.UserProfile
	filters  models.FilterState

	subMu       sync.Mutex
	subscribers []subscriber
	nextSubID   uint64

	backend db.Backend
	toaster Toaster
	deletes *deleteConfirmations

	now   func() time.Time
	newID func() string
}

// New creates a store over backend. toaster may be nil. Call Init before use.
func New(cfg *config.Config, backend db.Backend, toaster Toaster) *Store {
	ttl := defaultDeleteConfirmTTL
	if cfg != nil && cfg.DeleteConfirmTTL > 0 {
		ttl = cfg.DeleteConfirmTTL
	}
	return &Store{
		user:    models.DefaultUser(),
		filters: models.DefaultFilters(),
		backend: backend,
		toaster: toaster,
		deletes: newDeleteConfirmations(ttl),
		now:     time.Now,
		newID:   utils.GenerateDashlessUUID,
	}
}

// Init loads the persisted state. Any key that is missing or unreadable falls
// back to its default (the sample products for the catalog). Failures are
// logged, never returned.
func (s *Store) Init() {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	now := s.timestamp()

	products, err := s.loadProducts(now)
	if err != nil {
		log.Printf("WARN: Could not load saved products: %v. Using sample data.", err)
		products = seedProducts(now, s.newID)
	}

	user := models.DefaultUser()
	if raw, found, err := s.backend.Get(KeyUser); err != nil {
		log.Printf("WARN: Could not read saved user profile: %v. Using defaults.", err)
	} else if found {
		if user, err = mergeUser(user, raw); err != nil {
			log.Printf("WARN: Saved user profile is malformed: %v. Using defaults.", err)
			user = models.DefaultUser()
		}
	}

	filters := models.DefaultFilters()
	if raw, found, err := s.backend.Get(KeyFilters); err != nil {
		log.Printf("WARN: Could not read saved filters: %v. Using defaults.", err)
	} else if found {
		if filters, err = mergeFilters(filters, raw); err != nil {
			log.Printf("WARN: Saved filters are malformed: %v. Using defaults.", err)
			filters = models.DefaultFilters()
		}
	}

	s.mu.Lock()
	s.products = products
	s.user = user
	s.filters = filters
	s.mu.Unlock()

	log.Printf("INFO: Store initialized with %d products", len(products))
}

func (s *Store) loadProducts(now time.Time) ([]models.Product, error) {
	raw, found, err := s.backend.Get(KeyProducts)
	if err != nil {
		return nil, fmt.Errorf("storage read failed: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("key '%s' not found", KeyProducts)
	}
	return parseProducts(raw, now, s.newID)
}

// Close drops all subscribers and pending deletions and closes the backend.
func (s *Store) Close() error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.subMu.Lock()
	s.subscribers = nil
	s.subMu.Unlock()

	s.deletes.clear()

	if err := s.backend.Close(); err != nil {
		log.Printf("ERROR: Failed to close storage backend: %v", err)
		return err
	}
	log.Println("INFO: Store closed.")
	return nil
}

// Subscribe registers fn to be called after every state change, in
// registration order. fn runs while the store is still inside the mutation:
// it may call read methods such as FilteredProducts or Stats, but must not
// call a mutation synchronously. The returned func removes fn and is safe to
// call more than once.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.subMu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// notify calls every subscriber and then persists. A panicking subscriber is
// logged and skipped; the remaining subscribers and the save still run.
// Callers hold opMu and must not hold mu.
func (s *Store) notify() {
	s.subMu.Lock()
	subs := make([]subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.subMu.Unlock()

	for _, sub := range subs {
		s.callSubscriber(sub)
	}
	s.persist()
}

func (s *Store) callSubscriber(sub subscriber) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: Subscriber %d panicked: %v", sub.id, r)
		}
	}()
	sub.fn()
}

// persist writes products, user and filters in one backend call. A failure
// is reported through the toaster; in-memory state stays as it is.
func (s *Store) persist() {
	s.mu.RLock()
	productsJSON, errP := json.Marshal(s.products)
	userJSON, errU := json.Marshal(s.user)
	filtersJSON, errF := json.Marshal(s.filters)
	s.mu.RUnlock()

	for _, err := range []error{errP, errU, errF} {
		if err != nil {
			log.Printf("ERROR: Failed to marshal store state: %v", err)
			s.toast(models.SeverityError, "Failed to save data")
			return
		}
	}

	err := db.SetAll(s.backend, map[string]string{
		KeyProducts: string(productsJSON),
		KeyUser:     string(userJSON),
		KeyFilters:  string(filtersJSON),
	})
	if err != nil {
		log.Printf("ERROR: Failed to save store state: %v", err)
		s.toast(models.SeverityError, "Failed to save data")
	}
}

func (s *Store) toast(severity models.Severity, message string) {
	if s.toaster == nil {
		return
	}
	s.toaster.Toast(severity, message)
}

// timestamp is the current time as stored on products: UTC, millisecond precision.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// indexOf returns the position of id in s.products, or -1. Callers hold mu.
func (s *Store) indexOf(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

// --- Snapshots ---

// Products returns a copy of the full collection in stored order.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	for i, p := range s.products {
		out[i] = p.Clone()
	}
	return out
}

// Product returns a copy of the product with the given id.
func (s *Store) Product(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.products[i].Clone(), true
	}
	return models.Product{}, false
}

func (s *Store) User() models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUser(s.user)
}

func (s *Store) Filters() models.FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

func cloneUser(u models.UserProfile) models.UserProfile {
	if u.Avatar != nil {
		avatar := *u.Avatar
		u.Avatar = &avatar
	}
	return u
}
