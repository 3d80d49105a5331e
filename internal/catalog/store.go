package catalog

import (
	"context"

	"github.com/go-faster/errors"
)

// Source yields the records the store is built from.
type Source interface {
	Load(ctx context.Context) ([]Product, error)
	Name() string
}

// Store is the immutable, ordered record set. It is safe for concurrent use
// because nothing mutates it after NewStore returns. Every record handed out
// is a copy.
type Store struct {
	products []Product
	byID     map[string]int
}

// NewStore applies defaults, validates every record and indexes them by id.
// Any invalid or duplicate record fails the whole load.
func NewStore(records []Product) (*Store, error) {
	s := &Store{
		products: make([]Product, 0, len(records)),
		byID:     make(map[string]int, len(records)),
	}

	for i, rec := range records {
		p := rec.withDefaults()
		if err := p.Validate(); err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		if _, dup := s.byID[p.ID]; dup {
			return nil, errors.Wrapf(ErrDuplicateID, "record %d: %s", i, p.ID)
		}
		s.byID[p.ID] = len(s.products)
		s.products = append(s.products, p.clone())
	}

	return s, nil
}

// LoadStore builds a store from src.
func LoadStore(ctx context.Context, src Source) (*Store, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", src.Name())
	}
	s, err := NewStore(records)
	if err != nil {
		return nil, errors.Wrapf(err, "validate %s", src.Name())
	}
	return s, nil
}

// Products returns a copy of the records in store order.
func (s *Store) Products() []Product {
	out := make([]Product, len(s.products))
	for i, p := range s.products {
		out[i] = p.clone()
	}
	return out
}

func (s *Store) Search(q Query) ([]Product, error) {
	return Search(s.products, q)
}

func (s *Store) Len() int {
	return len(s.products)
}

func (s *Store) Get(id string) (Product, error) {
	i, ok := s.byID[id]
	if !ok {
		return Product{}, errors.Wrap(ErrNotFound, id)
	}
	return s.products[i].clone(), nil
}
