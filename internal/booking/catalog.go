package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pawsuite/grooming-booking/internal/storage"
)

// Catalog reads and seeds the service list.
type Catalog struct {
	store storage.Store
}

func NewCatalog(store storage.Store) *Catalog {
	return &Catalog{store: store}
}

// DefaultServices is the fixed catalog the shop opens with.
func DefaultServices() []Service {
	return []Service{
		{ID: "s1", Name: "Basic Bath", Price: 250, Duration: "30 mins"},
		{ID: "s2", Name: "Full Groom", Price: 700, Duration: "90 mins"},
		{ID: "s3", Name: "Nail Trim", Price: 120, Duration: "15 mins"},
		{ID: "s4", Name: "Ear Cleaning", Price: 100, Duration: "10 mins"},
	}
}

// EnsureSeeded writes the default catalog when the stored one is absent,
// malformed, or empty. A valid non-empty catalog is left alone, so repeated
// calls are no-ops.
func (c *Catalog) EnsureSeeded(ctx context.Context) error {
	raw, err := c.store.Get(ctx, keyServices)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("read catalog: %w", err)
	}
	if err == nil {
		var services []Service
		if jsonErr := json.Unmarshal(raw, &services); jsonErr == nil && len(services) > 0 {
			return nil
		}
	}

	data, err := json.Marshal(DefaultServices())
	if err != nil {
		return fmt.Errorf("encode default catalog: %w", err)
	}
	if err := c.store.Set(ctx, keyServices, data); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}

// ListServices returns the current catalog. Absent or malformed data reads
// as an empty catalog; only a store outage is an error.
func (c *Catalog) ListServices(ctx context.Context) ([]Service, error) {
	raw, err := c.store.Get(ctx, keyServices)
	if errors.Is(err, storage.ErrNotFound) {
		return []Service{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var services []Service
	if err := json.Unmarshal(raw, &services); err != nil {
		return []Service{}, nil
	}
	return services, nil
}

// GetService looks a service up by id.
func (c *Catalog) GetService(ctx context.Context, id string) (*Service, error) {
	services, err := c.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	for i := range services {
		if services[i].ID == id {
			return &services[i], nil
		}
	}
	return nil, ErrUnknownService
}
