package rabbitmq

import (
	"errors"
	"fmt"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/provossen/mqconf/client"
	"github.com/provossen/mqconf/core"
)

func init() {
	client.Register("rabbitmq", client.Factory{
		NewProducer: func(props core.Properties) (core.ProducerSettings, error) {
			return NewProducer(optsFromProps(props)...), nil
		},
		NewConsumer: func(props core.Properties) (core.ConsumerSettings, error) {
			return NewConsumer(optsFromProps(props)...), nil
		},
	})
}

// Producer maps resolved producer values onto amqp091-go.
//
// Mapping decisions:
//   - The first resolved address becomes the broker URI; the "amqp://"
//     scheme is prepended when absent.
//   - The heartbeat interval maps to Config.Heartbeat and the send
//     timeout to the connection dial timeout.
//   - The client identity travels in the connection_name property.
//   - AMQP has no library-side publish retry, so the retry counts stay on
//     the embedded config for callers that re-publish themselves.
type Producer struct {
	client.ProducerConfig
	opts options
}

// NewProducer creates an unconfigured producer target.
func NewProducer(fns ...Option) *Producer {
	opts := defaults()
	for _, fn := range fns {
		fn(&opts)
	}
	return &Producer{opts: opts}
}

// URI returns the broker URI dialed for this producer.
func (p *Producer) URI() (string, error) {
	return firstURI(p.Addresses())
}

// Config builds the amqp.Config for the resolved values.
func (p *Producer) Config() amqp.Config {
	return connConfig(&p.ClientConfig, p.SendTimeout, p.opts)
}

// Consumer maps resolved consumer values onto an AMQP queue bound to a
// topic exchange.
//
// Mapping decisions:
//   - The consumer group names the queue, the topic names a topic
//     exchange, and each subscribed tag becomes a binding key, "#" for a
//     match-all subscription.
//   - ConsumeThreadMax becomes the channel prefetch count; orderly
//     consumption pins it to one.
//   - A queue only holds messages routed while it exists, so the offset
//     start and consume timestamp have no analog here and are left on the
//     embedded config untouched.
type Consumer struct {
	client.ConsumerConfig
	opts   options
	filter *core.TagFilter
}

// NewConsumer creates an unconfigured consumer target.
func NewConsumer(fns ...Option) *Consumer {
	opts := defaults()
	for _, fn := range fns {
		fn(&opts)
	}
	return &Consumer{opts: opts}
}

// Subscribe validates the pending binding: the queue name (the consumer
// group, which must already be set), the exchange name, and the tag
// expression. Nothing is recorded on failure.
func (c *Consumer) Subscribe(topic, tags string) error {
	if err := checkName("queue", c.Group); err != nil {
		return err
	}
	if err := checkName("exchange", topic); err != nil {
		return err
	}
	filter, err := core.ParseTagExpression(tags)
	if err != nil {
		return err
	}
	for _, tag := range filter.Tags() {
		if err := checkBindingKey(tag); err != nil {
			return err
		}
	}
	c.Topic, c.Tags, c.filter = topic, tags, filter
	return nil
}

// TagFilter returns the filter parsed from the subscribed tag expression,
// or nil before a successful Subscribe.
func (c *Consumer) TagFilter() *core.TagFilter { return c.filter }

// URI returns the broker URI dialed for this consumer.
func (c *Consumer) URI() (string, error) {
	return firstURI(c.Addresses())
}

// Config builds the amqp.Config for the resolved values.
func (c *Consumer) Config() amqp.Config {
	return connConfig(&c.ClientConfig, c.opts.dialTimeout, c.opts)
}

// Queue returns the queue name, which is the consumer group.
func (c *Consumer) Queue() string { return c.Group }

// Exchange returns the topic exchange the queue binds to.
func (c *Consumer) Exchange() string { return c.Topic }

// BindingKeys returns the routing keys to bind, one per subscribed tag,
// or "#" for a match-all subscription.
func (c *Consumer) BindingKeys() []string {
	if c.filter == nil || c.filter.MatchAll() {
		return []string{"#"}
	}
	return c.filter.Tags()
}

// PrefetchCount returns the channel prefetch bound.
func (c *Consumer) PrefetchCount() int {
	if c.Orderly {
		return 1
	}
	return c.ConsumeThreadMax
}

// Durable reports whether declared queues and exchanges survive broker
// restarts.
func (c *Consumer) Durable() bool { return c.opts.durable }

// AutoDelete reports whether declared queues and exchanges are removed
// once unused.
func (c *Consumer) AutoDelete() bool { return c.opts.autoDelete }

// Exclusive reports whether the declared queue is restricted to the
// declaring connection.
func (c *Consumer) Exclusive() bool { return c.opts.exclusive }

// RequeueOnNack reports whether rejected messages should be requeued.
func (c *Consumer) RequeueOnNack() bool { return c.opts.requeueOnNack }

func connConfig(cc *client.ClientConfig, dialTimeout time.Duration, opts options) amqp.Config {
	cfg := amqp.Config{
		Vhost:      opts.vhost,
		Heartbeat:  cc.HeartbeatInterval,
		Properties: amqp.NewConnectionProperties(),
	}
	cfg.Properties.SetClientConnectionName(cc.ClientID())
	if dialTimeout > 0 {
		cfg.Dial = amqp.DefaultDial(dialTimeout)
	}
	return cfg
}

func firstURI(addrs []string) (string, error) {
	if len(addrs) == 0 {
		return "", errors.New("mqconf/rabbitmq: no broker addresses resolved")
	}
	uri := addrs[0]
	if !strings.Contains(uri, "://") {
		uri = "amqp://" + uri
	}
	return uri, nil
}

const maxNameLen = 255

// checkName applies the broker's naming rules for queues and exchanges.
func checkName(kind, name string) error {
	if name == "" {
		return fmt.Errorf("empty %s name", kind)
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("%s name longer than %d characters", kind, maxNameLen)
	}
	if strings.HasPrefix(name, "amq.") {
		return fmt.Errorf("%s name %q uses the reserved amq. prefix", kind, name)
	}
	return nil
}

// checkBindingKey validates a tag as a single routing-key word.
func checkBindingKey(tag string) error {
	if strings.ContainsAny(tag, ".#* \t") {
		return fmt.Errorf("illegal binding key %q", tag)
	}
	return nil
}

// optsFromProps extracts rabbitmq-specific options from the property set.
// Malformed values are ignored here; the keys are advisory extras.
func optsFromProps(props core.Properties) []Option {
	var opts []Option
	if v := props.Get("rabbitmq.vhost"); v != "" {
		opts = append(opts, WithVhost(v))
	}
	if props.Get("rabbitmq.durable") != "" {
		if v, err := props.GetBool("rabbitmq.durable", true); err == nil {
			opts = append(opts, WithDurable(v))
		}
	}
	if props.Get("rabbitmq.auto.delete") != "" {
		if v, err := props.GetBool("rabbitmq.auto.delete", false); err == nil {
			opts = append(opts, WithAutoDelete(v))
		}
	}
	return opts
}
