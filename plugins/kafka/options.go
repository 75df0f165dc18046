package kafka

import (
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const defaultDialTimeout = 10 * time.Second

// Option configures the Kafka targets beyond what property resolution
// covers.
type Option func(*options)

type options struct {
	// Writer
	balancer  kafka.Balancer
	batchSize int
	async     bool

	// Reader
	minBytes int
	maxBytes int
	maxWait  time.Duration

	// General
	dialer *kafka.Dialer
	logger *zap.Logger
}

func defaults() options {
	return options{
		balancer:  &kafka.LeastBytes{},
		batchSize: 100,
		minBytes:  1,
		maxBytes:  10e6, // 10 MB
		maxWait:   500 * time.Millisecond,
	}
}

// WithBalancer sets the partition balancer for the writer.
func WithBalancer(b kafka.Balancer) Option {
	return func(o *options) { o.balancer = b }
}

// WithBatchSize sets the maximum batch size for writes.
func WithBatchSize(n int) Option {
	return func(o *options) { o.batchSize = n }
}

// WithAsync enables asynchronous writes.
func WithAsync(async bool) Option {
	return func(o *options) { o.async = async }
}

// WithMaxBytes sets the maximum bytes per fetch.
func WithMaxBytes(n int) Option {
	return func(o *options) { o.maxBytes = n }
}

// WithMaxWait sets the maximum wait time for fetches.
func WithMaxWait(d time.Duration) Option {
	return func(o *options) { o.maxWait = d }
}

// WithDialer sets a custom dialer for TLS/SASL connections.
func WithDialer(d *kafka.Dialer) Option {
	return func(o *options) { o.dialer = d }
}

// WithLogger routes kafka-go's error logging through zap.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// kafkaLogger bridges kafka-go's printf-style logging onto zap.
func kafkaLogger(l *zap.Logger) kafka.LoggerFunc {
	s := l.Sugar()
	return func(msg string, args ...any) {
		s.Errorf(msg, args...)
	}
}
