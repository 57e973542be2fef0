package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// Product is a catalog entry as decoded from JSON. Only "images" and
// "variants[].variantImg" are read, and nothing ever writes to it.
type Product map[string]any

type Catalog struct {
	Path     string
	Products []Product
}

func newCatalogFinder() *Catalog {
	return &Catalog{}
}

func (c *Catalog) locateIn(path string) *Catalog {
	c.Path = path
	return c
}

func (c *Catalog) load() (*Catalog, error) {
	data := &Catalog{Path: c.Path}

	b, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	if err := json.Unmarshal(b, &data.Products); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", c.Path, err)
	}
	if data.Products == nil {
		return nil, fmt.Errorf("invalid catalog %s: no product list", c.Path)
	}

	return data, nil
}
