package store

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"sharebox/models"
	"sharebox/utils"

	"github.com/golang-jwt/jwt/v5"
)

const deleteTokenIssuer = "sharebox"

// deleteClaims is the payload of a delete confirmation token.
type deleteClaims struct {
	ProductID string `json:"pid"`
	jwt.RegisteredClaims
}

// pendingDelete is a token that has been handed out and not yet used.
type pendingDelete struct {
	productID string
	expiry    time.Time
}

// deleteConfirmations signs delete tokens and remembers which are still
// pending, so a token confirms at most once and can be cancelled.
type deleteConfirmations struct {
	key []byte // Random per process; tokens don't survive a restart
	ttl time.Duration

	mu      sync.Mutex
	pending map[string]pendingDelete // Keyed by token ID (jti)
}

func newDeleteConfirmations(ttl time.Duration) *deleteConfirmations {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		// crypto/rand failing means the platform is unusable.
		panic(fmt.Sprintf("failed to generate delete token key: %v", err))
	}
	return &deleteConfirmations{
		key:     key,
		ttl:     ttl,
		pending: make(map[string]pendingDelete),
	}
}

func (d *deleteConfirmations) issue(productID string, now time.Time) (string, time.Time, error) {
	jti := utils.GenerateDashlessUUID()
	expiry := now.Add(d.ttl)
	claims := &deleteClaims{
		ProductID: productID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    deleteTokenIssuer,
			Subject:   productID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(d.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign delete token: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for id, p := range d.pending {
		if now.After(p.expiry) {
			delete(d.pending, id)
		}
	}
	d.pending[jti] = pendingDelete{productID: productID, expiry: expiry}
	return signed, expiry, nil
}

// parse checks the signature and issuer. Expiry is checked against the
// pending record instead, so an expired token can still be cancelled.
func (d *deleteConfirmations) parse(tokenString string) (*deleteClaims, error) {
	claims := &deleteClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return d.key, nil
	}, jwt.WithoutClaimsValidation(), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("invalid delete token: %w", err)
	}
	if !token.Valid || claims.ID == "" || claims.Issuer != deleteTokenIssuer {
		return nil, errors.New("invalid delete token")
	}
	return claims, nil
}

// take removes the pending record for claims and returns it if it was still
// pending and matches the token.
func (d *deleteConfirmations) take(claims *deleteClaims) (pendingDelete, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, found := d.pending[claims.ID]
	if !found || p.productID != claims.ProductID {
		return pendingDelete{}, false
	}
	delete(d.pending, claims.ID)
	return p, true
}

func (d *deleteConfirmations) expiryOf(claims *deleteClaims) (time.Time, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, found := d.pending[claims.ID]
	if !found || p.productID != claims.ProductID {
		return time.Time{}, false
	}
	return p.expiry, true
}

func (d *deleteConfirmations) clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = make(map[string]pendingDelete)
}

// RequestDelete starts a deletion. It returns a token that ConfirmDelete
// accepts once, until the configured TTL elapses. ok is false if id is unknown.
func (s *Store) RequestDelete(id string) (token string, ok bool) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.RLock()
	found := s.indexOf(id) >= 0
	s.mu.RUnlock()
	if !found {
		return "", false
	}

	token, expiry, err := s.deletes.issue(id, s.now())
	if err != nil {
		log.Printf("ERROR: %v", err)
		return "", false
	}
	log.Printf("DEBUG: Delete requested for product %s, confirmation expires at %s", id, expiry.Format(time.RFC3339))
	return token, true
}

// DeleteExpiry reports when a pending delete token stops being accepted.
func (s *Store) DeleteExpiry(token string) (time.Time, bool) {
	claims, err := s.deletes.parse(token)
	if err != nil {
		return time.Time{}, false
	}
	return s.deletes.expiryOf(claims)
}

// ConfirmDelete removes the product the token was issued for. It reports
// false if the token is invalid, expired, already used or cancelled, or if
// the product no longer exists.
func (s *Store) ConfirmDelete(token string) bool {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	claims, err := s.deletes.parse(token)
	if err != nil {
		log.Printf("WARN: Delete confirmation rejected: %v", err)
		return false
	}
	pending, ok := s.deletes.take(claims)
	if !ok {
		log.Printf("INFO: Delete confirmation rejected: token %s is not pending", claims.ID)
		return false
	}
	if s.now().After(pending.expiry) {
		log.Printf("INFO: Delete confirmation rejected: token %s expired", claims.ID)
		return false
	}

	s.mu.Lock()
	i := s.indexOf(pending.productID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.products = append(s.products[:i:i], s.products[i+1:]...)
	s.mu.Unlock()

	log.Printf("INFO: Product %s deleted", pending.productID)
	s.notify()
	s.toast(models.SeverityInfo, "Product deleted")
	return true
}

// CancelDelete withdraws a pending token. It reports whether the token was pending.
func (s *Store) CancelDelete(token string) bool {
	claims, err := s.deletes.parse(token)
	if err != nil {
		return false
	}
	_, ok := s.deletes.take(claims)
	return ok
}
