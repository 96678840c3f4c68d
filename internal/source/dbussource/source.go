// Package dbussource fetches the UDisks2 managed-object graph over D-Bus.
package dbussource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"

	"github.com/deploymenttheory/go-udisks/internal/interfaces"
	"github.com/deploymenttheory/go-udisks/internal/logger"
	"github.com/deploymenttheory/go-udisks/internal/types"
)

// Bus names accepted by Config.Bus.
const (
	SystemBus  = "system"
	SessionBus = "session"
)

// Config identifies the remote object manager.
type Config struct {
	Bus         string        `mapstructure:"bus" yaml:"bus"`
	Destination string        `mapstructure:"destination" yaml:"destination"`
	Path        string        `mapstructure:"path" yaml:"path"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// DefaultConfig returns the UDisks2 service on the system bus.
func DefaultConfig() Config {
	return Config{
		Bus:         SystemBus,
		Destination: types.DefaultDestination,
		Path:        string(types.DefaultRootPath),
		Timeout:     types.DefaultTimeout,
	}
}

// withDefaults fills empty fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Bus == "" {
		c.Bus = def.Bus
	}
	if c.Destination == "" {
		c.Destination = def.Destination
	}
	if c.Path == "" {
		c.Path = def.Path
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	return c
}

// Validate checks that the configuration can address an object manager.
func (c Config) Validate() error {
	c = c.withDefaults()
	if c.Bus != SystemBus && c.Bus != SessionBus {
		return fmt.Errorf("unsupported bus %q: want %q or %q", c.Bus, SystemBus, SessionBus)
	}
	if !types.ObjectPath(c.Path).IsValid() {
		return fmt.Errorf("invalid object path %q", c.Path)
	}
	return nil
}

// caller performs a method call. *dbus.Object satisfies it.
type caller interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// Source is an interfaces.ObjectSource backed by a D-Bus connection.
type Source struct {
	config Config
	conn   *dbus.Conn
	object caller
	log    zerolog.Logger
}

var _ interfaces.ObjectSource = (*Source)(nil)

// New connects to the configured bus.
func New(config Config) (*Source, error) {
	config = config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		conn *dbus.Conn
		err  error
	)
	switch config.Bus {
	case SessionBus:
		conn, err = dbus.ConnectSessionBus()
	default:
		conn, err = dbus.ConnectSystemBus()
	}
	if err != nil {
		return nil, &types.SourceError{
			Op:          "connect",
			Destination: config.Destination,
			Path:        types.ObjectPath(config.Path),
			Err:         errors.Join(types.ErrSourceUnavailable, err),
		}
	}

	return NewWithConn(conn, config), nil
}

// NewWithConn uses an already established connection. Close closes it.
func NewWithConn(conn *dbus.Conn, config Config) *Source {
	config = config.withDefaults()
	return &Source{
		config: config,
		conn:   conn,
		object: conn.Object(config.Destination, dbus.ObjectPath(config.Path)),
		log:    logger.WithComponent("dbus"),
	}
}

// Describe implements interfaces.ObjectSource.
func (s *Source) Describe() string {
	return fmt.Sprintf("dbus:%s:%s%s", s.config.Bus, s.config.Destination, s.config.Path)
}

// FetchAll calls GetManagedObjects once, bounded by the configured timeout.
func (s *Source) FetchAll(ctx context.Context) (types.ManagedObjectGraph, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	var raw map[dbus.ObjectPath]map[string]map[string]dbus.Variant
	call := s.object.CallWithContext(ctx, types.GetManagedObjectsMethod, 0)
	if err := call.Store(&raw); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		return nil, &types.SourceError{
			Op:          "GetManagedObjects",
			Destination: s.config.Destination,
			Path:        types.ObjectPath(s.config.Path),
			Err:         err,
		}
	}

	return convertGraph(raw, s.log), nil
}

// Close releases the bus connection.
func (s *Source) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
