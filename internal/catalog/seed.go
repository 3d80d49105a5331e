package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// SeedSource serves the compiled-in MySupplements assortment.
type SeedSource struct{}

func (SeedSource) Name() string { return "seed" }

func (SeedSource) Load(context.Context) ([]Product, error) {
	return SeedProducts(), nil
}

// SeedProducts returns a fresh copy of the built-in records.
func SeedProducts() []Product {
	return []Product{
		{
			ID:         "MS-SHIL-50",
			Title:      "Himalaya Shilajit Harz – 50g",
			Price:      decimal.RequireFromString("29.90"),
			Currency:   "CHF",
			ProductURL: "https://mysupplements.ch/collections/himalaya-shilajit/products/himalaya-shilajit-harz",
			ImageURL:   "https://cdn.shopify.com/s/files/1/0915/9891/3865/files/Golden.png?v=1752315616",
			MPN:        strPtr("MS-SHIL-50"),
			Country:    "CH",
		},
		{
			ID:         "MS-NMN-RES-60",
			Title:      "NMN + Resveratrol Kapseln – 60 Stück",
			Price:      decimal.RequireFromString("25.90"),
			Currency:   "CHF",
			ProductURL: "https://mysupplements.ch/collections/longevity/products/mysupplements-nmn-resveratrol-zellenergie-langlebigkeit",
			ImageURL:   "https://cdn.shopify.com/s/files/1/0915/9891/3865/files/17C0ED8D-FA81-414B-9A6A-22A54ED7E802.jpg?v=1752592972",
			MPN:        strPtr("MS-NMN-RES-60"),
			Country:    "CH",
		},
		{
			ID:         "MS-SPERM-90",
			Title:      "Spermidin Kapseln – 60 Stück",
			Price:      decimal.RequireFromString("27.90"),
			Currency:   "CHF",
			ProductURL: "https://mysupplements.ch/collections/longevity/products/spermidin",
			ImageURL:   "https://cdn.shopify.com/s/files/1/0915/9891/3865/files/7AA08625-D373-44AC-B2F0-E95F46CBD0BD.jpg?v=1752315358",
			MPN:        strPtr("MS-SPERM-90"),
			Country:    "CH",
		},
	}
}
