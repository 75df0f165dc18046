package client

import (
	"fmt"
	"sort"
	"sync"

	"github.com/provossen/mqconf/core"
)

// Factory creates unconfigured producer and consumer targets for one
// backend. The property set is passed through so factories can read
// backend-specific keys the resolution functions do not interpret.
type Factory struct {
	NewProducer func(props core.Properties) (core.ProducerSettings, error)
	NewConsumer func(props core.Properties) (core.ConsumerSettings, error)
}

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register adds a named backend factory. Plugins call this from init().
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[name] = factory
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateProducer instantiates an unconfigured producer target by backend
// name.
func CreateProducer(name string, props core.Properties) (core.ProducerSettings, error) {
	f, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if f.NewProducer == nil {
		return nil, fmt.Errorf("mqconf: backend %q has no producer support", name)
	}
	return f.NewProducer(props)
}

// CreateConsumer instantiates an unconfigured consumer target by backend
// name.
func CreateConsumer(name string, props core.Properties) (core.ConsumerSettings, error) {
	f, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if f.NewConsumer == nil {
		return nil, fmt.Errorf("mqconf: backend %q has no consumer support", name)
	}
	return f.NewConsumer(props)
}

func lookup(name string) (Factory, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()
	if !ok {
		return Factory{}, fmt.Errorf("mqconf: unknown backend %q", name)
	}
	return f, nil
}
