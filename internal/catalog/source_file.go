package catalog

import (
	"bytes"
	"context"
	"os"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FileSource reads records from a YAML (or JSON) dataset file of the form
//
//	products:
//	  - id: MS-SHIL-50
//	    title: Himalaya Shilajit Harz – 50g
//	    price: 29.90
//	    ...
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string { return "file " + s.Path }

type datasetFile struct {
	Products []productRecord `yaml:"products"`
}

type productRecord struct {
	ID           string  `yaml:"id"`
	Title        string  `yaml:"title"`
	Price        string  `yaml:"price"`
	Currency     string  `yaml:"currency"`
	ProductURL   string  `yaml:"product_url"`
	ImageURL     string  `yaml:"image_url"`
	Brand        string  `yaml:"brand"`
	Availability string  `yaml:"availability"`
	MPN          *string `yaml:"mpn"`
	GTIN         *string `yaml:"gtin"`
	Country      string  `yaml:"country"`
}

func (s *FileSource) Load(ctx context.Context) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Wrap(err, "read dataset")
	}
	return ParseDataset(data)
}

// ParseDataset decodes a dataset document. Unknown keys are rejected so a
// typo in a field name cannot silently drop data.
func ParseDataset(data []byte) ([]Product, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc datasetFile
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decode dataset")
	}

	out := make([]Product, 0, len(doc.Products))
	for i, rec := range doc.Products {
		p, err := rec.toProduct()
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		out = append(out, p)
	}
	return out, nil
}

func (r productRecord) toProduct() (Product, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return Product{}, errors.Wrapf(ErrInvalidRecord, "%s: price %q: %v", r.ID, r.Price, err)
	}
	return Product{
		ID:           r.ID,
		Title:        r.Title,
		Price:        price,
		Currency:     r.Currency,
		ProductURL:   r.ProductURL,
		ImageURL:     r.ImageURL,
		Brand:        r.Brand,
		Availability: r.Availability,
		MPN:          r.MPN,
		GTIN:         r.GTIN,
		Country:      r.Country,
	}, nil
}
