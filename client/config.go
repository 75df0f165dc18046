package client

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/provossen/mqconf/core"
)

// ClientConfig holds resolved client-level values as plain fields.
// Backend plugins extract the fields they need; the setters exist so the
// resolution functions can drive any embedding type through one contract.
type ClientConfig struct {
	// NameServerAddr is the raw address list, with entries separated by
	// ';' or ','.
	NameServerAddr string

	ClientIP          string
	InstanceName      string
	CallbackThreads   int
	PollInterval      time.Duration
	HeartbeatInterval time.Duration
}

func (c *ClientConfig) SetNameServerAddr(addr string)              { c.NameServerAddr = addr }
func (c *ClientConfig) SetClientIP(ip string)                      { c.ClientIP = ip }
func (c *ClientConfig) SetInstanceName(name string)                { c.InstanceName = name }
func (c *ClientConfig) SetCallbackExecutorThreads(n int)           { c.CallbackThreads = n }
func (c *ClientConfig) SetPollNameServerInterval(d time.Duration)  { c.PollInterval = d }
func (c *ClientConfig) SetHeartbeatBrokerInterval(d time.Duration) { c.HeartbeatInterval = d }

// Addresses splits the name-server list into individual addresses.
func (c *ClientConfig) Addresses() []string {
	return strings.FieldsFunc(c.NameServerAddr, func(r rune) bool {
		return r == ';' || r == ','
	})
}

// ClientID renders the conventional "ip@instance" identity for this client.
func (c *ClientConfig) ClientID() string {
	switch {
	case c.ClientIP == "":
		return c.InstanceName
	case c.InstanceName == "":
		return c.ClientIP
	}
	return c.ClientIP + "@" + c.InstanceName
}

// ProducerConfig holds resolved producer values.
type ProducerConfig struct {
	ClientConfig

	Group               string
	SendRetryTimes      int
	AsyncSendRetryTimes int
	SendTimeout         time.Duration
}

func (p *ProducerConfig) SetProducerGroup(group string)  { p.Group = group }
func (p *ProducerConfig) SetSendRetryTimes(n int)        { p.SendRetryTimes = n }
func (p *ProducerConfig) SetAsyncSendRetryTimes(n int)   { p.AsyncSendRetryTimes = n }
func (p *ProducerConfig) SetSendTimeout(d time.Duration) { p.SendTimeout = d }

// ConsumerConfig holds resolved consumer values, including the subscription
// captured by Subscribe.
type ConsumerConfig struct {
	ClientConfig

	Group                 string
	OffsetPersistInterval time.Duration
	ConsumeThreadMin      int
	ConsumeThreadMax      int
	Orderly               bool
	OffsetStart           core.OffsetStart
	ConsumeTimestamp      string

	Topic string
	Tags  string

	filter *core.TagFilter
}

func (c *ConsumerConfig) SetConsumerGroup(group string)            { c.Group = group }
func (c *ConsumerConfig) SetOffsetPersistInterval(d time.Duration) { c.OffsetPersistInterval = d }
func (c *ConsumerConfig) SetConsumeThreadMin(n int)                { c.ConsumeThreadMin = n }
func (c *ConsumerConfig) SetConsumeThreadMax(n int)                { c.ConsumeThreadMax = n }
func (c *ConsumerConfig) SetConsumeOrderly(orderly bool)           { c.Orderly = orderly }
func (c *ConsumerConfig) SetOffsetStart(start core.OffsetStart)    { c.OffsetStart = start }
func (c *ConsumerConfig) SetConsumeTimestamp(ts string)            { c.ConsumeTimestamp = ts }

// Subscribe validates and records the subscription. The topic must be a
// legal topic name and tags a parseable tag expression; nothing is recorded
// on failure.
func (c *ConsumerConfig) Subscribe(topic, tags string) error {
	if err := CheckTopic(topic); err != nil {
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
func (c *ConsumerConfig) TagFilter() *core.TagFilter { return c.filter }

// topicPattern admits the characters brokers commonly accept in topic
// names. Stricter backends re-validate against their own rules.
var topicPattern = regexp.MustCompile(`^[%|a-zA-Z0-9_-]+$`)

// maxTopicLen bounds topic names.
const maxTopicLen = 127

// CheckTopic reports whether topic is a legal topic name.
func CheckTopic(topic string) error {
	if topic == "" {
		return errors.New("empty topic")
	}
	if len(topic) > maxTopicLen {
		return fmt.Errorf("topic longer than %d characters", maxTopicLen)
	}
	if !topicPattern.MatchString(topic) {
		return fmt.Errorf("topic %q contains illegal characters", topic)
	}
	return nil
}
