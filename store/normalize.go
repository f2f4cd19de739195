package store

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"sharebox/models"

	"github.com/tidwall/gjson"
)

var errInvalidJSON = errors.New("invalid JSON")

// parseProducts reads a JSON array of products. Entries that are not objects
// are skipped; every other entry is normalized.
func parseProducts(raw string, now time.Time, newID func() string) ([]models.Product, error) {
	if !gjson.Valid(raw) {
		return nil, errInvalidJSON
	}
	result := gjson.Parse(raw)
	if !result.IsArray() {
		return nil, fmt.Errorf("expected a JSON array, got %s", result.Type)
	}
	return normalizeProducts(result, now, newID), nil
}

func normalizeProducts(array gjson.Result, now time.Time, newID func() string) []models.Product {
	products := make([]models.Product, 0)
	array.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			log.Printf("DEBUG: Skipping product entry %s: not an object", key.String())
			return true
		}
		products = append(products, normalizeProduct(value, now, newID))
		return true
	})
	return products
}

// normalizeProduct builds a fully populated Product from one JSON object.
// Missing or wrongly typed fields get their defaults, so the result of
// normalizing an already normalized product is the same product.
func normalizeProduct(v gjson.Result, now time.Time, newID func() string) models.Product {
	p := models.Product{
		ID:          nonEmptyID(v.Get("id")),
		Title:       nonEmptyString(v.Get("title"), models.DefaultTitle),
		Description: nonEmptyString(v.Get("description"), ""),
		Price:       nonNegativeFloat(v.Get("price")),
		Category:    nonEmptyString(v.Get("category"), models.DefaultCategory),
		Image:       dataURI(v.Get("image")),
		Likes:       nonNegativeInt(v.Get("likes")),
		Comments:    stringList(v.Get("comments")),
		CreatedAt:   timestampOr(v.Get("createdAt"), now),
		CreatedBy:   nonEmptyString(v.Get("createdBy"), models.DefaultUserName),
	}
	if p.ID == "" {
		p.ID = newID()
	}
	return p
}

func nonEmptyID(v gjson.Result) string {
	switch v.Type {
	case gjson.String, gjson.Number:
		return v.String()
	}
	return ""
}

func nonEmptyString(v gjson.Result, def string) string {
	if v.Type == gjson.String && v.Str != "" {
		return v.Str
	}
	return def
}

func nonNegativeFloat(v gjson.Result) float64 {
	if v.Type != gjson.Number {
		return 0
	}
	f := v.Float()
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func nonNegativeInt(v gjson.Result) int {
	if v.Type != gjson.Number {
		return 0
	}
	if n := v.Int(); n > 0 {
		return int(n)
	}
	return 0
}

func stringList(v gjson.Result) []string {
	out := make([]string, 0)
	if !v.IsArray() {
		return out
	}
	for _, item := range v.Array() {
		if item.Type == gjson.String {
			out = append(out, item.Str)
		}
	}
	return out
}

// dataURI keeps v only if it is a string holding a data URI.
func dataURI(v gjson.Result) *string {
	if v.Type != gjson.String {
		return nil
	}
	return normalizeImage(v.Str)
}

func normalizeImage(s string) *string {
	if !strings.HasPrefix(s, "data:") {
		return nil
	}
	return &s
}

func timestampOr(v gjson.Result, now time.Time) time.Time {
	if v.Type != gjson.String {
		return now
	}
	t, err := time.Parse(time.RFC3339Nano, v.Str)
	if err != nil {
		return now
	}
	return t.UTC()
}

// mergeUser parses raw as a user profile object and overlays its valid fields
// on base.
func mergeUser(base models.UserProfile, raw string) (models.UserProfile, error) {
	if !gjson.Valid(raw) {
		return base, errInvalidJSON
	}
	v := gjson.Parse(raw)
	if !v.IsObject() {
		return base, fmt.Errorf("expected a JSON object, got %s", v.Type)
	}
	return overlayUser(base, v), nil
}

// overlayUser is a shallow merge: fields present in v with a valid type
// replace those in base.
func overlayUser(base models.UserProfile, v gjson.Result) models.UserProfile {
	u := cloneUser(base)
	if name := v.Get("name"); name.Type == gjson.String && strings.TrimSpace(name.Str) != "" {
		u.Name = name.Str
	}
	if avatar := v.Get("avatar"); avatar.Exists() {
		switch avatar.Type {
		case gjson.Null:
			u.Avatar = nil
		case gjson.String:
			if img := normalizeImage(avatar.Str); img != nil {
				u.Avatar = img
			}
		}
	}
	if theme := v.Get("theme"); theme.Type == gjson.String {
		switch models.Theme(theme.Str) {
		case models.ThemeLight, models.ThemeDark:
			u.Theme = models.Theme(theme.Str)
		}
	}
	return u
}

// mergeFilters parses raw as a filter state object and overlays its valid
// fields on base.
func mergeFilters(base models.FilterState, raw string) (models.FilterState, error) {
	if !gjson.Valid(raw) {
		return base, errInvalidJSON
	}
	v := gjson.Parse(raw)
	if !v.IsObject() {
		return base, fmt.Errorf("expected a JSON object, got %s", v.Type)
	}

	f := base
	if search := v.Get("search"); search.Type == gjson.String {
		f.Search = search.Str
	}
	if category := v.Get("category"); category.Type == gjson.String && category.Str != "" {
		f.Category = category.Str
	}
	if sort := v.Get("sort"); sort.Type == gjson.String && isKnownSort(models.SortOrder(sort.Str)) {
		f.Sort = models.SortOrder(sort.Str)
	}
	if mine := v.Get("showMyProducts"); mine.IsBool() {
		f.ShowMyProducts = mine.Bool()
	}
	return f, nil
}

func isKnownSort(s models.SortOrder) bool {
	switch s {
	case models.SortNewest, models.SortPriceLow, models.SortPriceHigh, models.SortMostLiked:
		return true
	}
	return false
}

// seedJSON is the sample catalog used when nothing valid has been saved.
// Ids and creation times are filled in by normalization.
const seedJSON = `[
	{
		"title": "Premium Wireless Headphones",
		"description": "High-quality noise-cancelling headphones with 30h battery life",
		"price": 199.99,
		"category": "Electronics",
		"likes": 15,
		"comments": ["Amazing sound quality!", "Very comfortable"],
		"createdBy": "Guest User"
	},
	{
		"title": "Designer Cotton T-Shirt",
		"description": "100% organic cotton, perfect fit for everyday wear",
		"price": 29.99,
		"category": "Clothing",
		"likes": 8,
		"comments": ["Love the fabric", "True to size"],
		"createdBy": "Guest User"
	},
	{
		"title": "Smart Watch Pro",
		"description": "Track your fitness and stay connected with this advanced smart watch",
		"price": 249.99,
		"category": "Electronics",
		"likes": 12,
		"comments": ["Great battery life", "Love the design"],
		"createdBy": "Guest User"
	},
	{
		"title": "Leather Wallet",
		"description": "Genuine leather wallet with multiple card slots",
		"price": 39.99,
		"category": "Clothing",
		"likes": 5,
		"comments": ["Looks elegant", "Good quality"],
		"createdBy": "Guest User"
	},
	{
		"title": "Running Shoes",
		"description": "Lightweight running shoes with superior cushioning",
		"price": 89.99,
		"category": "Sports",
		"likes": 7,
		"comments": ["Very comfortable", "Great for running"],
		"createdBy": "Guest User"
	}
]`

func seedProducts(now time.Time, newID func() string) []models.Product {
	return normalizeProducts(gjson.Parse(seedJSON), now, newID)
}
