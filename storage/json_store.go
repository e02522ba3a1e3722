package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/namiksejdovic1-tech/price-master-bih/models"
	"github.com/namiksejdovic1-tech/price-master-bih/utils"
)

// ErrProductNotFound is returned when a product id does not exist.
var ErrProductNotFound = errors.New("product not found")

// starterProducts seed the store on first run so the dashboard is not
// empty before the first product is added.
var starterProducts = []models.Product{
	{ID: 1, Name: "Beko Frižider RCSA366K40WN", MyPrice: 899.00},
	{ID: 2, Name: "Gorenje Mašina za veš WEI843", MyPrice: 749.00},
	{ID: 3, Name: "Samsung Galaxy A54 128GB", MyPrice: 649.00},
	{ID: 4, Name: "Philips TV 55PUS8808", MyPrice: 1299.00},
	{ID: 5, Name: "Bosch Usisivač BGL3HYG", MyPrice: 299.00},
	{ID: 6, Name: "LG Klima uređaj S09ET", MyPrice: 1199.00},
	{ID: 7, Name: "Tefal Toster TT3650", MyPrice: 89.00},
	{ID: 8, Name: "Xiaomi Robot Vacuum S10", MyPrice: 549.00},
	{ID: 9, Name: "Ariston Bojler PRO1 R 80", MyPrice: 429.00},
	{ID: 10, Name: "Electrolux Šporet EKC6450", MyPrice: 1099.00},
}

// ProductStore persists the product catalog as a flat JSON file. All
// mutations rewrite the whole file atomically (temp file + rename).
type ProductStore struct {
	path string

	mu       sync.Mutex
	products []models.Product
}

// NewProductStore loads the store from path, seeding it with the
// starter catalog when the file does not exist yet.
func NewProductStore(path string) (*ProductStore, error) {
	s := &ProductStore{path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		utils.Info("Products file missing, seeding %d starter products", len(starterProducts))
		s.products = append(s.products, starterProducts...)
		if err := s.save(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("read products file: %w", err)
	default:
		if err := json.Unmarshal(data, &s.products); err != nil {
			return nil, fmt.Errorf("decode products file: %w", err)
		}
	}

	return s, nil
}

// List returns a copy of all products.
func (s *ProductStore) List() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Get returns the product with the given id.
func (s *ProductStore) Get(id int) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Add assigns the next id to p, appends it and persists the store.
func (s *ProductStore) Add(p models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	maxID := 0
	for _, existing := range s.products {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	p.ID = maxID + 1

	s.products = append(s.products, p)
	if err := s.save(); err != nil {
		s.products = s.products[:len(s.products)-1]
		return models.Product{}, err
	}
	return p, nil
}

// Update replaces the product with p.ID and persists the store.
func (s *ProductStore) Update(p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.products {
		if existing.ID == p.ID {
			old := s.products[i]
			s.products[i] = p
			if err := s.save(); err != nil {
				s.products[i] = old
				return err
			}
			return nil
		}
	}
	return ErrProductNotFound
}

// Delete removes the product with the given id and persists the store.
func (s *ProductStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.products {
		if existing.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return s.save()
		}
	}
	return ErrProductNotFound
}

// save writes the store to disk. Callers hold s.mu.
func (s *ProductStore) save() error {
	data, err := json.MarshalIndent(s.products, "", "  ")
	if err != nil {
		return fmt.Errorf("encode products: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".products-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write products: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace products file: %w", err)
	}
	return nil
}
