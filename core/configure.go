package core

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/google/uuid"
)

// ConfigureCommon resolves the client-level properties shared by producers
// and consumers into target. The name-server address is required; every
// other value falls back to a machine- or task-derived default.
//
// Callers outside any scheduler pass a nil TaskContext and get random
// identity defaults instead of task-derived ones.
func ConfigureCommon(props Properties, tc TaskContext, target ClientSettings) error {
	addr := props.Get(KeyNameServerAddr)
	if addr == "" {
		return fmt.Errorf("%w: %s", ErrMissingRequiredField, KeyNameServerAddr)
	}
	target.SetNameServerAddr(addr)
	target.SetClientIP(props.GetOrDefault(KeyClientIP, LocalAddress()))
	target.SetInstanceName(props.GetOrDefault(KeyClientName, defaultIdentity(tc)))

	threads, err := props.GetInt(KeyClientCallbackExecutorThreads, runtime.NumCPU())
	if err != nil {
		return err
	}
	target.SetCallbackExecutorThreads(threads)

	poll, err := props.GetMillis(KeyNameServerPollInterval, DefaultNameServerPollInterval)
	if err != nil {
		return err
	}
	target.SetPollNameServerInterval(poll)

	heartbeat, err := props.GetMillis(KeyBrokerHeartbeatInterval, DefaultBrokerHeartbeatInterval)
	if err != nil {
		return err
	}
	target.SetHeartbeatBrokerInterval(heartbeat)

	return nil
}

// ConfigureProducer resolves the common properties and the producer-side
// ones into target. The producer group defaults to the task identity, and
// the configured retry count is applied to the synchronous and the
// asynchronous send path alike.
func ConfigureProducer(props Properties, tc TaskContext, target ProducerSettings) error {
	if err := ConfigureCommon(props, tc, target); err != nil {
		return err
	}

	target.SetProducerGroup(props.GetOrDefault(KeyProducerGroup, defaultIdentity(tc)))

	retries, err := props.GetInt(KeyProducerRetryTimes, DefaultProducerRetryTimes)
	if err != nil {
		return err
	}
	target.SetSendRetryTimes(retries)
	target.SetAsyncSendRetryTimes(retries)

	timeout, err := props.GetMillis(KeyProducerTimeout, DefaultProducerTimeout)
	if err != nil {
		return err
	}
	target.SetSendTimeout(timeout)

	return nil
}

// ConfigureConsumer resolves the common properties and the consumer-side
// ones into target, finishing with the subscription itself. The consumer
// group and topic are required. A subscription the target rejects is
// reported as an ErrInvalidConfiguration wrapping the target's error.
func ConfigureConsumer(props Properties, tc TaskContext, target ConsumerSettings) error {
	if err := ConfigureCommon(props, tc, target); err != nil {
		return err
	}

	group := props.Get(KeyConsumerGroup)
	if group == "" {
		return fmt.Errorf("%w: %s", ErrMissingRequiredField, KeyConsumerGroup)
	}
	target.SetConsumerGroup(group)

	persist, err := props.GetMillis(KeyConsumerOffsetPersistInterval, DefaultOffsetPersistInterval)
	if err != nil {
		return err
	}
	target.SetOffsetPersistInterval(persist)

	minThreads, err := props.GetInt(KeyConsumerMinThreads, DefaultConsumeThreadMin)
	if err != nil {
		return err
	}
	target.SetConsumeThreadMin(minThreads)

	maxThreads, err := props.GetInt(KeyConsumerMaxThreads, DefaultConsumeThreadMax)
	if err != nil {
		return err
	}
	target.SetConsumeThreadMax(maxThreads)

	orderly, err := props.GetBool(KeyConsumerOrderly, false)
	if err != nil {
		return err
	}
	target.SetConsumeOrderly(orderly)

	switch reset := props.GetOrDefault(KeyConsumerOffsetReset, OffsetTokenLatest); reset {
	case OffsetTokenEarliest:
		target.SetOffsetStart(OffsetEarliest)
	case OffsetTokenTimestamp:
		target.SetOffsetStart(OffsetTimestamp)
		// There is no separate start-time key yet, so the selector token
		// itself is handed down as the consume timestamp.
		// TODO: add a consumer.offset.timestamp key and forward its value
		// here instead of the token.
		target.SetConsumeTimestamp(reset)
	default:
		// Includes OffsetTokenLatest and anything unrecognized.
		target.SetOffsetStart(OffsetLatest)
	}

	topic := props.Get(KeyConsumerTopic)
	if topic == "" {
		return fmt.Errorf("%w: %s", ErrMissingRequiredField, KeyConsumerTopic)
	}
	if err := target.Subscribe(topic, props.GetOrDefault(KeyConsumerTag, DefaultTag)); err != nil {
		return fmt.Errorf("%w: subscribe to topic %q: %w", ErrInvalidConfiguration, topic, err)
	}

	return nil
}

// defaultIdentity derives the fallback identity for client names and
// producer groups: the task ID when a context is present, otherwise a
// fresh UUID.
func defaultIdentity(tc TaskContext) string {
	if tc != nil {
		return strconv.Itoa(tc.TaskID())
	}
	return uuid.NewString()
}
