package kafka

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/provossen/mqconf/client"
	"github.com/provossen/mqconf/core"
)

func consumerProps() core.Properties {
	return core.Properties{
		core.KeyNameServerAddr:                "k1:9092;k2:9092",
		core.KeyClientName:                    "ingest-3",
		core.KeyClientIP:                      "10.1.2.3",
		core.KeyNameServerPollInterval:        "9000",
		core.KeyBrokerHeartbeatInterval:       "4000",
		core.KeyConsumerGroup:                 "readers",
		core.KeyConsumerTopic:                 "orders.created",
		core.KeyConsumerTag:                   "TagA",
		core.KeyConsumerOffsetReset:           "earliest",
		core.KeyConsumerOffsetPersistInterval: "7000",
	}
}

func TestConsumerReaderConfig(t *testing.T) {
	c := NewConsumer()
	if err := core.ConfigureConsumer(consumerProps(), nil, c); err != nil {
		t.Fatalf("ConfigureConsumer: %v", err)
	}

	cfg, err := c.ReaderConfig()
	if err != nil {
		t.Fatalf("ReaderConfig: %v", err)
	}

	if want := []string{"k1:9092", "k2:9092"}; !reflect.DeepEqual(cfg.Brokers, want) {
		t.Errorf("Brokers = %v, want %v", cfg.Brokers, want)
	}
	if cfg.GroupID != "readers" || cfg.Topic != "orders.created" {
		t.Errorf("GroupID/Topic = %q/%q, want readers/orders.created", cfg.GroupID, cfg.Topic)
	}
	if cfg.CommitInterval != 7*time.Second {
		t.Errorf("CommitInterval = %v, want %v", cfg.CommitInterval, 7*time.Second)
	}
	if cfg.HeartbeatInterval != 4*time.Second {
		t.Errorf("HeartbeatInterval = %v, want %v", cfg.HeartbeatInterval, 4*time.Second)
	}
	if cfg.PartitionWatchInterval != 9*time.Second {
		t.Errorf("PartitionWatchInterval = %v, want %v", cfg.PartitionWatchInterval, 9*time.Second)
	}
	if cfg.StartOffset != kafka.FirstOffset {
		t.Errorf("StartOffset = %d, want FirstOffset", cfg.StartOffset)
	}
	if cfg.Dialer == nil || cfg.Dialer.ClientID != "10.1.2.3@ingest-3" {
		t.Errorf("Dialer.ClientID = %v, want 10.1.2.3@ingest-3", cfg.Dialer)
	}
}

func TestConsumerStartOffsets(t *testing.T) {
	tests := []struct {
		reset         string
		want          int64
		wantTimestamp string
	}{
		{"earliest", kafka.FirstOffset, ""},
		{"latest", kafka.LastOffset, ""},
		{"timestamp", kafka.LastOffset, "timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.reset, func(t *testing.T) {
			props := consumerProps()
			props[core.KeyConsumerOffsetReset] = tt.reset

			c := NewConsumer()
			if err := core.ConfigureConsumer(props, nil, c); err != nil {
				t.Fatalf("ConfigureConsumer: %v", err)
			}
			cfg, err := c.ReaderConfig()
			if err != nil {
				t.Fatalf("ReaderConfig: %v", err)
			}
			if cfg.StartOffset != tt.want {
				t.Errorf("StartOffset = %d, want %d", cfg.StartOffset, tt.want)
			}
			if c.ConsumeTimestamp != tt.wantTimestamp {
				t.Errorf("ConsumeTimestamp = %q, want %q", c.ConsumeTimestamp, tt.wantTimestamp)
			}
		})
	}
}

func TestConsumerSubscribeValidation(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		tags  string
		ok    bool
	}{
		{"plain", "orders", "*", true},
		{"dotted", "orders.created", "*", true},
		{"dashed", "orders-created_v2", "*", true},
		{"empty topic", "", "*", false},
		{"spaces", "orders created", "*", false},
		{"reserved dot", ".", "*", false},
		{"too long", strings.Repeat("t", 250), "*", false},
		{"bad tags", "orders", "||", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConsumer()
			err := c.Subscribe(tt.topic, tt.tags)
			if tt.ok && err != nil {
				t.Errorf("Subscribe(%q, %q): %v", tt.topic, tt.tags, err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatalf("Subscribe(%q, %q) succeeded, want error", tt.topic, tt.tags)
				}
				if c.Topic != "" || c.TagFilter() != nil {
					t.Error("failed Subscribe left state behind")
				}
			}
		})
	}
}

func TestConsumerAccept(t *testing.T) {
	c := NewConsumer()
	if err := core.ConfigureConsumer(consumerProps(), nil, c); err != nil {
		t.Fatalf("ConfigureConsumer: %v", err)
	}

	tagged := Tagged(kafka.Message{Topic: "orders.created"}, "TagA")
	if got := Tag(tagged); got != "TagA" {
		t.Errorf("Tag = %q, want %q", got, "TagA")
	}
	if !c.Accept(tagged) {
		t.Error("Accept rejected a subscribed tag")
	}
	if c.Accept(Tagged(tagged, "TagC")) {
		t.Error("Accept admitted an unsubscribed tag")
	}
	if c.Accept(kafka.Message{Topic: "orders.created"}) {
		t.Error("Accept admitted an untagged message")
	}
}

func TestConsumerAcceptAll(t *testing.T) {
	props := consumerProps()
	delete(props, core.KeyConsumerTag)

	c := NewConsumer()
	if err := core.ConfigureConsumer(props, nil, c); err != nil {
		t.Fatalf("ConfigureConsumer: %v", err)
	}
	if !c.Accept(kafka.Message{Topic: "orders.created"}) {
		t.Error("match-all subscription rejected an untagged message")
	}
}

func TestProducerWriter(t *testing.T) {
	p := NewProducer()
	props := core.Properties{
		core.KeyNameServerAddr:         "k1:9092",
		core.KeyClientName:             "emitter-1",
		core.KeyClientIP:               "10.1.2.3",
		core.KeyNameServerPollInterval: "9000",
		core.KeyProducerRetryTimes:     "5",
		core.KeyProducerTimeout:        "1250",
	}
	if err := core.ConfigureProducer(props, nil, p); err != nil {
		t.Fatalf("ConfigureProducer: %v", err)
	}

	w, err := p.Writer()
	if err != nil {
		t.Fatalf("Writer: %v", err)
	}
	defer w.Close()

	if w.MaxAttempts != 6 {
		t.Errorf("MaxAttempts = %d, want 6", w.MaxAttempts)
	}
	if w.WriteTimeout != 1250*time.Millisecond {
		t.Errorf("WriteTimeout = %v, want %v", w.WriteTimeout, 1250*time.Millisecond)
	}
	if w.RequiredAcks != kafka.RequireAll {
		t.Errorf("RequiredAcks = %v, want RequireAll", w.RequiredAcks)
	}

	tr, ok := w.Transport.(*kafka.Transport)
	if !ok {
		t.Fatalf("Transport is %T, want *kafka.Transport", w.Transport)
	}
	if tr.ClientID != "10.1.2.3@emitter-1" {
		t.Errorf("Transport.ClientID = %q, want %q", tr.ClientID, "10.1.2.3@emitter-1")
	}
	if tr.MetadataTTL != 9*time.Second {
		t.Errorf("Transport.MetadataTTL = %v, want %v", tr.MetadataTTL, 9*time.Second)
	}
}

func TestProducerWriterNoAddresses(t *testing.T) {
	if _, err := NewProducer().Writer(); err == nil {
		t.Error("Writer succeeded without resolved addresses")
	}
}

func TestOptsFromProps(t *testing.T) {
	props := core.Properties{
		"kafka.async":      "true",
		"kafka.batch.size": "250",
		"kafka.max.wait":   "750",
		"kafka.max.bytes":  "oops", // ignored
	}

	p := NewProducer(optsFromProps(props)...)
	if !p.opts.async {
		t.Error("async option not applied")
	}
	if p.opts.batchSize != 250 {
		t.Errorf("batchSize = %d, want 250", p.opts.batchSize)
	}
	if p.opts.maxWait != 750*time.Millisecond {
		t.Errorf("maxWait = %v, want 750ms", p.opts.maxWait)
	}
	if p.opts.maxBytes != defaults().maxBytes {
		t.Errorf("maxBytes = %d, want default", p.opts.maxBytes)
	}
}

func TestRegisteredFactory(t *testing.T) {
	target, err := client.CreateConsumer("kafka", nil)
	if err != nil {
		t.Fatalf("CreateConsumer: %v", err)
	}
	if _, ok := target.(*Consumer); !ok {
		t.Errorf("CreateConsumer returned %T, want *Consumer", target)
	}
}
