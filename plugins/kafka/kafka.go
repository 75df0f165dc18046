package kafka

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/segmentio/kafka-go"

	"github.com/provossen/mqconf/client"
	"github.com/provossen/mqconf/core"
)

func init() {
	client.Register("kafka", client.Factory{
		NewProducer: func(props core.Properties) (core.ProducerSettings, error) {
			return NewProducer(optsFromProps(props)...), nil
		},
		NewConsumer: func(props core.Properties) (core.ConsumerSettings, error) {
			return NewConsumer(optsFromProps(props)...), nil
		},
	})
}

// Producer maps resolved producer values onto segmentio/kafka-go.
//
// Mapping decisions:
//   - The name-server address list becomes the bootstrap broker list.
//   - SetSendRetryTimes maps to Writer.MaxAttempts (attempts = retries + 1).
//     kafka-go retries sync and async writes through the same field, so the
//     async retry count has no separate home and the sync value wins.
//   - The client identity becomes the transport client ID and the poll
//     interval its metadata refresh TTL.
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

// Writer builds a kafka.Writer from the resolved values.
func (p *Producer) Writer() (*kafka.Writer, error) {
	addrs := p.Addresses()
	if len(addrs) == 0 {
		return nil, errors.New("mqconf/kafka: no broker addresses resolved")
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(addrs...),
		Balancer:     p.opts.balancer,
		BatchSize:    p.opts.batchSize,
		Async:        p.opts.async,
		MaxAttempts:  p.SendRetryTimes + 1,
		WriteTimeout: p.SendTimeout,
		RequiredAcks: kafka.RequireAll,
		Transport:    p.transport(),
	}
	if p.opts.logger != nil {
		w.ErrorLogger = kafkaLogger(p.opts.logger)
	}
	return w, nil
}

func (p *Producer) transport() *kafka.Transport {
	t := &kafka.Transport{
		ClientID:    p.ClientID(),
		MetadataTTL: p.PollInterval,
	}
	if p.opts.dialer != nil {
		t.TLS = p.opts.dialer.TLS
		t.SASL = p.opts.dialer.SASLMechanism
	}
	return t
}

// Consumer maps resolved consumer values onto a kafka.ReaderConfig.
//
// Mapping decisions:
//   - The consumer group maps to GroupID, the offset persist interval to
//     CommitInterval, the heartbeat interval to HeartbeatInterval, and the
//     poll interval to PartitionWatchInterval.
//   - OffsetEarliest and OffsetLatest map to FirstOffset and LastOffset.
//     A timestamp start keeps LastOffset; the raw consume timestamp stays
//     available on the embedded config for callers that seek explicitly.
//   - Tag filtering has no broker-side analog in Kafka. The parsed filter
//     is exposed through TagFilter for fetch-side filtering, and the
//     ConsumeThreadMin/Max and Orderly fields bound the handler pool.
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

// Subscribe validates the topic against Kafka's naming rules, parses the
// tag expression, and records both. Nothing is recorded on failure.
func (c *Consumer) Subscribe(topic, tags string) error {
	if err := checkTopic(topic); err != nil {
		return err
	}
	filter, err := core.ParseTagExpression(tags)
	if err != nil {
		return err
	}
	c.Topic, c.Tags, c.filter = topic, tags, filter
	return nil
}

// TagFilter returns the filter parsed from the subscribed tag expression,
// or nil before a successful Subscribe.
func (c *Consumer) TagFilter() *core.TagFilter { return c.filter }

// ReaderConfig builds the kafka.ReaderConfig for the recorded subscription.
func (c *Consumer) ReaderConfig() (kafka.ReaderConfig, error) {
	if c.Topic == "" {
		return kafka.ReaderConfig{}, errors.New("mqconf/kafka: no subscription recorded")
	}
	addrs := c.Addresses()
	if len(addrs) == 0 {
		return kafka.ReaderConfig{}, errors.New("mqconf/kafka: no broker addresses resolved")
	}

	cfg := kafka.ReaderConfig{
		Brokers:                addrs,
		GroupID:                c.Group,
		Topic:                  c.Topic,
		Dialer:                 c.dialer(),
		MinBytes:               c.opts.minBytes,
		MaxBytes:               c.opts.maxBytes,
		MaxWait:                c.opts.maxWait,
		CommitInterval:         c.OffsetPersistInterval,
		HeartbeatInterval:      c.HeartbeatInterval,
		PartitionWatchInterval: c.PollInterval,
		WatchPartitionChanges:  true,
		StartOffset:            c.startOffset(),
	}
	if c.opts.logger != nil {
		cfg.ErrorLogger = kafkaLogger(c.opts.logger)
	}
	return cfg, nil
}

func (c *Consumer) startOffset() int64 {
	if c.OffsetStart == core.OffsetEarliest {
		return kafka.FirstOffset
	}
	return kafka.LastOffset
}

// dialer returns a copy of the configured dialer carrying the client
// identity, so connections are attributable in broker logs.
func (c *Consumer) dialer() *kafka.Dialer {
	d := c.opts.dialer
	if d == nil {
		d = &kafka.Dialer{Timeout: defaultDialTimeout, DualStack: true}
	}
	cp := *d
	cp.ClientID = c.ClientID()
	return &cp
}

var topicPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

const maxTopicLen = 249

// checkTopic applies Kafka's topic naming rules.
func checkTopic(topic string) error {
	if topic == "" {
		return errors.New("empty topic")
	}
	if topic == "." || topic == ".." {
		return fmt.Errorf("topic %q is reserved", topic)
	}
	if len(topic) > maxTopicLen {
		return fmt.Errorf("topic longer than %d characters", maxTopicLen)
	}
	if !topicPattern.MatchString(topic) {
		return fmt.Errorf("topic %q contains illegal characters", topic)
	}
	return nil
}

// optsFromProps extracts kafka-specific options from the property set.
// Malformed values are ignored here; the keys are advisory extras.
func optsFromProps(props core.Properties) []Option {
	var opts []Option
	if v, err := props.GetBool("kafka.async", false); err == nil && v {
		opts = append(opts, WithAsync(true))
	}
	if props.Get("kafka.batch.size") != "" {
		if v, err := props.GetInt("kafka.batch.size", 0); err == nil && v > 0 {
			opts = append(opts, WithBatchSize(v))
		}
	}
	if props.Get("kafka.max.bytes") != "" {
		if v, err := props.GetInt("kafka.max.bytes", 0); err == nil && v > 0 {
			opts = append(opts, WithMaxBytes(v))
		}
	}
	if props.Get("kafka.max.wait") != "" {
		if v, err := props.GetMillis("kafka.max.wait", 0); err == nil && v > 0 {
			opts = append(opts, WithMaxWait(v))
		}
	}
	return opts
}
