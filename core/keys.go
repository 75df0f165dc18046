package core

import "time"

// Property keys understood by the resolution functions. Keys are flat,
// dot-separated strings so a set can come from a map literal, a properties
// file, environment variables, or a viper tree unchanged.
const (
	// KeyNameServerAddr is the name-server (bootstrap) address list.
	// Multiple addresses are separated by ';' or ','. Required.
	KeyNameServerAddr = "nameserver.addr"

	// KeyClientName names this client instance. Defaults to the task ID
	// when a TaskContext is present, otherwise to a random UUID.
	KeyClientName = "client.name"

	// KeyClientIP is the address the client advertises and binds to.
	// Defaults to the first usable local interface address.
	KeyClientIP = "client.ip"

	// KeyClientCallbackExecutorThreads sizes the callback executor pool.
	// Defaults to the number of CPUs.
	KeyClientCallbackExecutorThreads = "client.callback.executor.threads"

	// KeyNameServerPollInterval is how often the client refreshes routing
	// metadata, in milliseconds.
	KeyNameServerPollInterval = "nameserver.poll.interval"

	// KeyBrokerHeartbeatInterval is how often the client heartbeats the
	// brokers, in milliseconds.
	KeyBrokerHeartbeatInterval = "brokerserver.heartbeat.interval"
)

// Producer keys.
const (
	// KeyProducerGroup names the producer group. Defaults like KeyClientName.
	KeyProducerGroup = "producer.group"

	// KeyProducerRetryTimes is the send retry count, applied to both the
	// synchronous and asynchronous paths.
	KeyProducerRetryTimes = "producer.retry.times"

	// KeyProducerTimeout is the send timeout, in milliseconds.
	KeyProducerTimeout = "producer.timeout"
)

// Consumer keys.
const (
	// KeyConsumerGroup names the consumer group. Required.
	KeyConsumerGroup = "consumer.group"

	// KeyConsumerTopic is the topic to subscribe to. Required.
	KeyConsumerTopic = "consumer.topic"

	// KeyConsumerTag filters the subscription, either "*" or a
	// "TagA || TagB" expression.
	KeyConsumerTag = "consumer.tag"

	// KeyConsumerOffsetReset selects where a fresh group starts reading:
	// one of the Offset* tokens below. Unrecognized values fall back to
	// latest.
	KeyConsumerOffsetReset = "consumer.offset.reset.to"

	// KeyConsumerOffsetPersistInterval is how often consumed offsets are
	// persisted, in milliseconds.
	KeyConsumerOffsetPersistInterval = "consumer.offset.persist.interval"

	// KeyConsumerMinThreads and KeyConsumerMaxThreads bound the consume
	// thread pool.
	KeyConsumerMinThreads = "consumer.min.threads"
	KeyConsumerMaxThreads = "consumer.max.threads"

	// KeyConsumerOrderly switches the consumer from concurrent to ordered
	// consumption.
	KeyConsumerOrderly = "consumer.messages.orderly"
)

// Tokens accepted by KeyConsumerOffsetReset.
const (
	OffsetTokenEarliest  = "earliest"
	OffsetTokenLatest    = "latest"
	OffsetTokenTimestamp = "timestamp"
)

// Defaults applied when the corresponding key is absent.
const (
	DefaultTag = "*"

	DefaultProducerRetryTimes = 2
	DefaultProducerTimeout    = 3000 * time.Millisecond

	DefaultNameServerPollInterval  = 30000 * time.Millisecond
	DefaultBrokerHeartbeatInterval = 30000 * time.Millisecond
	DefaultOffsetPersistInterval   = 5000 * time.Millisecond

	DefaultConsumeThreadMin = 20
	DefaultConsumeThreadMax = 64
)
