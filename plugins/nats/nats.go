package nats

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/provossen/mqconf/client"
	"github.com/provossen/mqconf/core"
)

func init() {
	client.Register("nats", client.Factory{
		NewProducer: func(props core.Properties) (core.ProducerSettings, error) {
			return NewProducer(optsFromProps(props)...), nil
		},
		NewConsumer: func(props core.Properties) (core.ConsumerSettings, error) {
			return NewConsumer(optsFromProps(props)...), nil
		},
	})
}

// consumeTimestampLayout is the wire form of consume timestamps,
// yyyyMMddHHmmss.
const consumeTimestampLayout = "20060102150405"

// Subject renders the subject a message with the given tag is published on.
// Untagged messages use the "_" token, so a single-level wildcard still
// catches them.
func Subject(topic, tag string) string {
	if tag == "" {
		tag = "_"
	}
	return topic + "." + tag
}

// Producer maps resolved producer values onto NATS JetStream.
//
// Mapping decisions:
//   - The address list joins into a comma-separated server URL list.
//   - The client identity becomes the connection name, the heartbeat
//     interval the ping interval, and the send timeout the dial timeout.
//   - SetSendRetryTimes becomes a jetstream.WithRetryAttempts publish
//     option; JetStream retries sync and async publishes the same way.
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

// URL joins the resolved addresses into a NATS server list.
func (p *Producer) URL() string {
	return strings.Join(p.Addresses(), ",")
}

// ConnectOptions returns the nats.Connect options for the resolved values.
func (p *Producer) ConnectOptions() []nats.Option {
	return connectOptions(&p.ClientConfig, p.SendTimeout, p.opts)
}

// PublishOptions returns the per-publish options carrying the resolved
// retry count.
func (p *Producer) PublishOptions() []jetstream.PublishOpt {
	if p.SendRetryTimes <= 0 {
		return nil
	}
	return []jetstream.PublishOpt{jetstream.WithRetryAttempts(p.SendRetryTimes)}
}

// Consumer maps resolved consumer values onto a JetStream stream and
// durable consumer.
//
// Mapping decisions:
//   - Messages live on "topic.tag" subjects, so the stream covers
//     "topic.>" and the durable consumer filters the subscribed tags.
//   - The consumer group becomes the durable name.
//   - OffsetEarliest maps to DeliverAll, OffsetLatest to DeliverNew, and a
//     timestamp start to DeliverByStartTime with the parsed consume
//     timestamp.
//   - ConsumeThreadMax bounds MaxAckPending; orderly consumption pins it
//     to one in-flight message.
// consumerConfig aliases client.ConsumerConfig so it can be embedded
// without its field name colliding with the ConsumerConfig method.
type consumerConfig = client.ConsumerConfig

type Consumer struct {
	consumerConfig
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

// Subscribe validates the topic as a subject prefix and the tags as
// subject tokens, then records the subscription. Nothing is recorded on
// failure.
func (c *Consumer) Subscribe(topic, tags string) error {
	if err := checkSubject(topic); err != nil {
		return err
	}
	filter, err := core.ParseTagExpression(tags)
	if err != nil {
		return err
	}
	for _, tag := range filter.Tags() {
		if err := checkToken(tag); err != nil {
			return fmt.Errorf("tag %q: %w", tag, err)
		}
	}
	c.Topic, c.Tags, c.filter = topic, tags, filter
	return nil
}

// TagFilter returns the filter parsed from the subscribed tag expression,
// or nil before a successful Subscribe.
func (c *Consumer) TagFilter() *core.TagFilter { return c.filter }

// URL joins the resolved addresses into a NATS server list.
func (c *Consumer) URL() string {
	return strings.Join(c.Addresses(), ",")
}

// ConnectOptions returns the nats.Connect options for the resolved values.
func (c *Consumer) ConnectOptions() []nats.Option {
	return connectOptions(&c.ClientConfig, 0, c.opts)
}

// StreamName derives the JetStream stream name covering the topic.
func (c *Consumer) StreamName() string {
	return sanitizeStreamName(c.Topic)
}

// StreamConfig builds the stream holding every tagged subject of the
// subscribed topic.
func (c *Consumer) StreamConfig() (jetstream.StreamConfig, error) {
	if c.Topic == "" {
		return jetstream.StreamConfig{}, errors.New("mqconf/nats: no subscription recorded")
	}
	return jetstream.StreamConfig{
		Name:      sanitizeStreamName(c.Topic),
		Subjects:  []string{c.Topic + ".>"},
		MaxMsgs:   c.opts.maxMsgs,
		MaxBytes:  c.opts.maxBytes,
		MaxAge:    c.opts.maxAge,
		Replicas:  c.opts.replicas,
		Retention: c.opts.retention,
		Storage:   c.opts.storage,
	}, nil
}

// ConsumerConfig builds the durable consumer for the recorded
// subscription.
func (c *Consumer) ConsumerConfig() (jetstream.ConsumerConfig, error) {
	if c.Topic == "" {
		return jetstream.ConsumerConfig{}, errors.New("mqconf/nats: no subscription recorded")
	}
	if err := checkToken(c.Group); err != nil {
		return jetstream.ConsumerConfig{}, fmt.Errorf("mqconf/nats: durable name %q: %w", c.Group, err)
	}

	cfg := jetstream.ConsumerConfig{
		Durable:        c.Group,
		AckPolicy:      jetstream.AckExplicitPolicy,
		AckWait:        c.opts.ackWait,
		MaxDeliver:     c.opts.maxDeliver,
		FilterSubjects: c.filterSubjects(),
		MaxAckPending:  c.maxAckPending(),
	}

	switch c.OffsetStart {
	case core.OffsetEarliest:
		cfg.DeliverPolicy = jetstream.DeliverAllPolicy
	case core.OffsetTimestamp:
		start, err := time.Parse(consumeTimestampLayout, c.ConsumeTimestamp)
		if err != nil {
			return jetstream.ConsumerConfig{}, fmt.Errorf("mqconf/nats: parse consume timestamp %q: %w", c.ConsumeTimestamp, err)
		}
		cfg.DeliverPolicy = jetstream.DeliverByStartTimePolicy
		cfg.OptStartTime = &start
	default:
		cfg.DeliverPolicy = jetstream.DeliverNewPolicy
	}

	return cfg, nil
}

func (c *Consumer) filterSubjects() []string {
	if c.filter == nil || c.filter.MatchAll() {
		return []string{c.Topic + ".*"}
	}
	tags := c.filter.Tags()
	subjects := make([]string, len(tags))
	for i, tag := range tags {
		subjects[i] = Subject(c.Topic, tag)
	}
	return subjects
}

func (c *Consumer) maxAckPending() int {
	if c.Orderly {
		return 1
	}
	return c.ConsumeThreadMax
}

func connectOptions(cc *client.ClientConfig, dialTimeout time.Duration, opts options) []nats.Option {
	nopts := []nats.Option{nats.Name(cc.ClientID())}
	if cc.HeartbeatInterval > 0 {
		nopts = append(nopts, nats.PingInterval(cc.HeartbeatInterval))
	}
	if dialTimeout > 0 {
		nopts = append(nopts, nats.Timeout(dialTimeout))
	}
	if opts.logger != nil {
		nopts = append(nopts, nats.ErrorHandler(errorHandler(opts.logger)))
	}
	return nopts
}

// checkSubject validates a dot-separated subject with no wildcards.
func checkSubject(subject string) error {
	if subject == "" {
		return errors.New("empty topic")
	}
	for _, token := range strings.Split(subject, ".") {
		if err := checkToken(token); err != nil {
			return fmt.Errorf("topic %q: %w", subject, err)
		}
	}
	return nil
}

// checkToken validates a single subject token.
func checkToken(token string) error {
	if token == "" {
		return errors.New("empty subject token")
	}
	if strings.ContainsAny(token, ".*> \t") {
		return fmt.Errorf("illegal subject token %q", token)
	}
	return nil
}

// sanitizeStreamName converts a subject to a valid stream name by
// replacing special characters.
func sanitizeStreamName(topic string) string {
	buf := make([]byte, len(topic))
	for i := 0; i < len(topic); i++ {
		c := topic[i]
		if c == '.' || c == '*' || c == '>' {
			buf[i] = '-'
		} else {
			buf[i] = c
		}
	}
	return string(buf)
}

// optsFromProps extracts nats-specific options from the property set.
// Malformed values are ignored here; the keys are advisory extras.
func optsFromProps(props core.Properties) []Option {
	var opts []Option
	if props.Get("nats.replicas") != "" {
		if v, err := props.GetInt("nats.replicas", 0); err == nil && v > 0 {
			opts = append(opts, WithReplicas(v))
		}
	}
	if props.Get("nats.max.deliver") != "" {
		if v, err := props.GetInt("nats.max.deliver", 0); err == nil && v > 0 {
			opts = append(opts, WithMaxDeliver(v))
		}
	}
	if props.Get("nats.ack.wait") != "" {
		if v, err := props.GetMillis("nats.ack.wait", 0); err == nil && v > 0 {
			opts = append(opts, WithAckWait(v))
		}
	}
	if props.Get("nats.storage") == "memory" {
		opts = append(opts, WithStorage(jetstream.MemoryStorage))
	}
	return opts
}
