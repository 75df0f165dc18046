package core

import "time"

// ClientSettings is the contract every configurable client target meets.
// The resolution functions drive these setters; implementations decide how
// the values map onto a concrete messaging stack.
type ClientSettings interface {
	SetNameServerAddr(addr string)
	SetClientIP(ip string)
	SetInstanceName(name string)
	SetCallbackExecutorThreads(n int)
	SetPollNameServerInterval(d time.Duration)
	SetHeartbeatBrokerInterval(d time.Duration)
}

// ProducerSettings extends ClientSettings with the producer-side knobs.
type ProducerSettings interface {
	ClientSettings

	SetProducerGroup(group string)
	SetSendRetryTimes(n int)
	SetAsyncSendRetryTimes(n int)
	SetSendTimeout(d time.Duration)
}

// ConsumerSettings extends ClientSettings with the consumer-side knobs.
// Subscribe is the one fallible call: targets validate the topic and tag
// expression against their own naming rules.
type ConsumerSettings interface {
	ClientSettings

	SetConsumerGroup(group string)
	SetOffsetPersistInterval(d time.Duration)
	SetConsumeThreadMin(n int)
	SetConsumeThreadMax(n int)
	SetConsumeOrderly(orderly bool)
	SetOffsetStart(start OffsetStart)
	SetConsumeTimestamp(ts string)
	Subscribe(topic, tags string) error
}
