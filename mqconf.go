// Package mqconf resolves flat property sets into fully configured
// message-queue client settings. It re-exports the core types for
// convenience, so users can write:
//
//	r := mqconf.NewResolver("kafka")
//	consumer, err := r.Consumer(props)
//
// Backends register themselves on import:
//
//	import _ "github.com/provossen/mqconf/plugins/kafka"
package mqconf

import (
	"go.uber.org/zap"

	"github.com/provossen/mqconf/client"
	"github.com/provossen/mqconf/core"
)

// Re-export core types at the package level for ergonomic usage.
type (
	Properties       = core.Properties
	TaskContext      = core.TaskContext
	StaticTask       = core.StaticTask
	OffsetStart      = core.OffsetStart
	TagFilter        = core.TagFilter
	ClientSettings   = core.ClientSettings
	ProducerSettings = core.ProducerSettings
	ConsumerSettings = core.ConsumerSettings
	Resolver         = client.Resolver
	Option           = client.Option
	Factory          = client.Factory
)

// Offset starting positions for consumer groups without a committed
// offset.
const (
	OffsetLatest    = core.OffsetLatest
	OffsetEarliest  = core.OffsetEarliest
	OffsetTimestamp = core.OffsetTimestamp
)

// Sentinel errors surfaced by the resolution functions.
var (
	ErrMissingRequiredField = core.ErrMissingRequiredField
	ErrInvalidConfiguration = core.ErrInvalidConfiguration
)

// ConfigureCommon resolves the shared client properties into target.
func ConfigureCommon(props Properties, tc TaskContext, target ClientSettings) error {
	return core.ConfigureCommon(props, tc, target)
}

// ConfigureProducer resolves the common and producer-side properties into
// target.
func ConfigureProducer(props Properties, tc TaskContext, target ProducerSettings) error {
	return core.ConfigureProducer(props, tc, target)
}

// ConfigureConsumer resolves the common and consumer-side properties into
// target and subscribes it to the configured topic.
func ConfigureConsumer(props Properties, tc TaskContext, target ConsumerSettings) error {
	return core.ConfigureConsumer(props, tc, target)
}

// NewResolver creates a Resolver bound to the named backend.
func NewResolver(backend string, opts ...Option) *Resolver {
	return client.NewResolver(backend, opts...)
}

// WithTaskContext supplies the task identity used for defaulted names.
func WithTaskContext(tc TaskContext) Option { return client.WithTaskContext(tc) }

// WithLogger sets the resolver's logger.
func WithLogger(logger *zap.Logger) Option { return client.WithLogger(logger) }

// Register makes a backend available under the given name.
func Register(name string, factory Factory) { client.Register(name, factory) }

// Backends lists the registered backend names.
func Backends() []string { return client.Backends() }
