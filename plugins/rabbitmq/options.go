package rabbitmq

import "time"

// Option configures the RabbitMQ targets beyond what property resolution
// covers.
type Option func(*options)

type options struct {
	// Connection
	vhost       string
	dialTimeout time.Duration

	// Queue and exchange declaration
	durable    bool
	autoDelete bool
	exclusive  bool

	// Consumer
	requeueOnNack bool
}

func defaults() options {
	return options{
		vhost:         "/",
		dialTimeout:   30 * time.Second,
		durable:       true,
		requeueOnNack: true,
	}
}

// WithVhost sets the virtual host to connect to.
func WithVhost(vhost string) Option {
	return func(o *options) { o.vhost = vhost }
}

// WithDialTimeout bounds connection establishment for consumers.
func WithDialTimeout(d time.Duration) Option {
	return func(o *options) { o.dialTimeout = d }
}

// WithDurable controls whether queues and exchanges survive broker
// restart.
func WithDurable(d bool) Option {
	return func(o *options) { o.durable = d }
}

// WithAutoDelete causes declared queues to be deleted when the last
// consumer disconnects.
func WithAutoDelete(d bool) Option {
	return func(o *options) { o.autoDelete = d }
}

// WithExclusive restricts declared queues to this connection.
func WithExclusive(e bool) Option {
	return func(o *options) { o.exclusive = e }
}

// WithRequeueOnNack controls whether rejected messages are requeued.
func WithRequeueOnNack(requeue bool) Option {
	return func(o *options) { o.requeueOnNack = requeue }
}
