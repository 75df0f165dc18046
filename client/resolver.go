package client

import (
	"go.uber.org/zap"

	"github.com/provossen/mqconf/core"
)

// Resolver binds a property set to a named backend: it pulls fresh targets
// from the registry and runs the resolution functions against them. One
// Resolver can resolve any number of producers and consumers.
type Resolver struct {
	backend string
	tc      core.TaskContext
	logger  *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTaskContext supplies the task identity used for client-name and
// producer-group defaults.
func WithTaskContext(tc core.TaskContext) Option {
	return func(r *Resolver) { r.tc = tc }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// NewResolver creates a Resolver for the named backend. The backend is
// looked up lazily, so plugins only have to be registered by the time the
// first resolution runs.
func NewResolver(backend string, opts ...Option) *Resolver {
	r := &Resolver{
		backend: backend,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Producer creates and fully resolves a producer target.
func (r *Resolver) Producer(props core.Properties) (core.ProducerSettings, error) {
	target, err := CreateProducer(r.backend, props)
	if err != nil {
		resolutionErrors.WithLabelValues(r.backend, "producer").Inc()
		return nil, err
	}
	if err := core.ConfigureProducer(props, r.tc, target); err != nil {
		resolutionErrors.WithLabelValues(r.backend, "producer").Inc()
		r.logger.Error("producer resolution failed",
			zap.String("backend", r.backend),
			zap.Error(err))
		return nil, err
	}
	resolutionsTotal.WithLabelValues(r.backend, "producer").Inc()
	r.logger.Info("producer configuration resolved",
		zap.String("backend", r.backend),
		zap.String("nameserver", props.Get(core.KeyNameServerAddr)))
	return target, nil
}

// Consumer creates and fully resolves a consumer target, subscription
// included.
func (r *Resolver) Consumer(props core.Properties) (core.ConsumerSettings, error) {
	target, err := CreateConsumer(r.backend, props)
	if err != nil {
		resolutionErrors.WithLabelValues(r.backend, "consumer").Inc()
		return nil, err
	}
	if err := core.ConfigureConsumer(props, r.tc, target); err != nil {
		resolutionErrors.WithLabelValues(r.backend, "consumer").Inc()
		r.logger.Error("consumer resolution failed",
			zap.String("backend", r.backend),
			zap.Error(err))
		return nil, err
	}
	resolutionsTotal.WithLabelValues(r.backend, "consumer").Inc()
	r.logger.Info("consumer configuration resolved",
		zap.String("backend", r.backend),
		zap.String("group", props.Get(core.KeyConsumerGroup)),
		zap.String("topic", props.Get(core.KeyConsumerTopic)))
	return target, nil
}
