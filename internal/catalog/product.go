package catalog

import (
	"net/url"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

const (
	DefaultBrand        = "MySupplements"
	DefaultAvailability = "in_stock"
	DefaultCountry      = "CH"
)

func init() {
	// Prices are encoded as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	ProductURL   string          `json:"product_url"`
	ImageURL     string          `json:"image_url"`
	Brand        string          `json:"brand"`
	Availability string          `json:"availability"`
	MPN          *string         `json:"mpn"`
	GTIN         *string         `json:"gtin"`
	Country      string          `json:"country"`
}

// withDefaults fills the fields that have a catalog-wide default.
func (p Product) withDefaults() Product {
	if p.Brand == "" {
		p.Brand = DefaultBrand
	}
	if p.Availability == "" {
		p.Availability = DefaultAvailability
	}
	if p.Country == "" {
		p.Country = DefaultCountry
	}
	return p
}

// Validate checks the record-level invariants. Uniqueness of ids is a store
// concern and is checked by NewStore.
func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.Wrap(ErrInvalidRecord, "id is empty")
	}
	if p.Price.IsNegative() {
		return errors.Wrapf(ErrInvalidRecord, "%s: price %s is negative", p.ID, p.Price)
	}
	if err := validateURL(p.ProductURL); err != nil {
		return errors.Wrapf(ErrInvalidRecord, "%s: product_url: %v", p.ID, err)
	}
	if err := validateURL(p.ImageURL); err != nil {
		return errors.Wrapf(ErrInvalidRecord, "%s: image_url: %v", p.ID, err)
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Errorf("scheme %q is not http(s)", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

// searchText is the haystack matched by query tokens. gtin is not part of it.
func (p Product) searchText() string {
	mpn := ""
	if p.MPN != nil {
		mpn = *p.MPN
	}
	return strings.ToLower(p.Title + " " + p.Brand + " " + mpn)
}

// clone returns a copy that shares no memory with p.
func (p Product) clone() Product {
	p.MPN = clonePtr(p.MPN)
	p.GTIN = clonePtr(p.GTIN)
	return p
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	return strPtr(*s)
}

func strPtr(s string) *string { return &s }
