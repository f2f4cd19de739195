package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"sharebox/models"
	"sharebox/utils"

	"github.com/tidwall/gjson"
)

// ErrMalformedImport is returned for import data that is not JSON or has no
// products array.
var ErrMalformedImport = errors.New("malformed import data")

// ImportPayload is a validated and normalized import document.
type ImportPayload struct {
	Products []models.Product
	// User holds the incoming user object, if the document had one.
	User    gjson.Result
	HasUser bool
}

// ParseImport validates data and normalizes every product in it.
func ParseImport(data []byte) (ImportPayload, error) {
	return parseImport(data, time.Now().UTC().Truncate(time.Millisecond), utils.GenerateDashlessUUID)
}

func parseImport(data []byte, now time.Time, newID func() string) (ImportPayload, error) {
	if !gjson.ValidBytes(data) {
		return ImportPayload{}, fmt.Errorf("%w: %v", ErrMalformedImport, errInvalidJSON)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return ImportPayload{}, fmt.Errorf("%w: expected a JSON object", ErrMalformedImport)
	}
	products := doc.Get("products")
	if !products.IsArray() {
		return ImportPayload{}, fmt.Errorf("%w: missing 'products' array", ErrMalformedImport)
	}

	payload := ImportPayload{Products: normalizeProducts(products, now, newID)}
	if user := doc.Get("user"); user.IsObject() {
		payload.User = user
		payload.HasUser = true
	}
	return payload, nil
}

// Import reads a whole export document from r and merges it: products whose
// id is not yet in the catalog are appended in document order, and the
// incoming user fields override the current ones. On any error the state is
// left as it was. It returns the number of products added.
func (s *Store) Import(r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		log.Printf("WARN: Failed to read import data: %v", err)
		s.toast(models.SeverityError, "Failed to import data")
		return 0, fmt.Errorf("failed to read import data: %w", err)
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	payload, err := parseImport(data, s.timestamp(), s.newID)
	if err != nil {
		log.Printf("WARN: Import rejected: %v", err)
		s.toast(models.SeverityError, "Failed to import data")
		return 0, err
	}

	s.mu.Lock()
	seen := make(map[string]struct{}, len(s.products)+len(payload.Products))
	for _, p := range s.products {
		seen[p.ID] = struct{}{}
	}
	added := 0
	for _, p := range payload.Products {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		s.products = append(s.products, p)
		added++
	}
	if payload.HasUser {
		s.user = overlayUser(s.user, payload.User)
	}
	s.mu.Unlock()

	log.Printf("INFO: Imported %d new products (%d in file)", added, len(payload.Products))
	s.notify()
	s.toast(models.SeveritySuccess, fmt.Sprintf("Imported %d new products", added))
	return added, nil
}

// ExportDocument returns a copy of the products and user, stamped with the
// current time.
func (s *Store) ExportDocument() models.ExportDocument {
	return models.ExportDocument{
		Products:   s.Products(),
		User:       s.User(),
		ExportDate: s.timestamp(),
	}
}

// Export writes the export document to w as indented JSON.
func (s *Store) Export(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.ExportDocument()); err != nil {
		log.Printf("ERROR: Failed to write export: %v", err)
		return fmt.Errorf("failed to write export: %w", err)
	}
	s.toast(models.SeveritySuccess, "Data exported successfully")
	return nil
}

// ExportFilename is the download name of an export made at t.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("beusharebox-export-%s.json", t.UTC().Format("2006-01-02"))
}
