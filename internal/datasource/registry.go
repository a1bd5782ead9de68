// Package datasource resolves named datasource identifiers to scoped
// database connections. Drivers register a factory per driver name; the
// registry maps configured datasources onto those factories and hands out a
// fresh connection per acquisition, so no connection is ever shared across
// operations.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/mjczone/dappermatic-sub001/internal/schemaops"
	"github.com/mjczone/dappermatic-sub001/internal/service"
)

// Factory builds an unconnected client for one driver.
type Factory func() service.Connection

var errUnknownDatasource = errors.New("no datasource registered under this identifier")

type Registry struct {
	mu      sync.RWMutex
	drivers map[string]Factory
	sources map[string]Config
}

// NewRegistry returns a registry prewired with the supported drivers.
func NewRegistry() *Registry {
	r := &Registry{
		drivers: make(map[string]Factory),
		sources: make(map[string]Config),
	}
	r.RegisterDriver("postgres", func() service.Connection { return service.NewPostgresClient() })
	r.RegisterDriver("mysql", func() service.Connection { return service.NewMySQLClient() })
	r.RegisterDriver("sqlserver", func() service.Connection { return service.NewMSSQLClient() })
	r.RegisterDriver("sqlite", func() service.Connection { return service.NewSQLiteClient() })
	return r
}

func (r *Registry) RegisterDriver(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drivers[name] = f
}

// Add registers a named datasource. The driver must be known and the name
// unused.
func (r *Registry) Add(cfg Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg.Name == "" {
		return fmt.Errorf("datasource name is required")
	}
	if _, ok := r.drivers[cfg.Driver]; !ok {
		return fmt.Errorf("datasource '%s': unsupported driver '%s'", cfg.Name, cfg.Driver)
	}
	if _, ok := r.sources[cfg.Name]; ok {
		return fmt.Errorf("datasource '%s' is already registered", cfg.Name)
	}
	r.sources[cfg.Name] = cfg
	return nil
}

// Names lists the registered datasource identifiers, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Acquire resolves a datasource identifier to a live connection owned
// exclusively by the caller, who must Close it. Unknown identifiers and
// unreachable targets both surface as a DatasourceError.
func (r *Registry) Acquire(ctx context.Context, datasourceID string) (service.Connection, error) {
	r.mu.RLock()
	cfg, ok := r.sources[datasourceID]
	var factory Factory
	if ok {
		factory = r.drivers[cfg.Driver]
	}
	r.mu.RUnlock()

	if !ok {
		return nil, &schemaops.DatasourceError{DatasourceID: datasourceID, Err: errUnknownDatasource}
	}

	conn := factory()
	if err := conn.Connect(ctx, cfg.DSN); err != nil {
		conn.Close()
		return nil, &schemaops.DatasourceError{DatasourceID: datasourceID, Err: err}
	}
	return conn, nil
}
