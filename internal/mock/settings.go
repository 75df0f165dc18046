package mock

import (
	"time"

	"github.com/provossen/mqconf/core"
)

// Client records every client-level setter call so tests can assert on the
// resolved values.
type Client struct {
	NameServerAddr    string
	ClientIP          string
	InstanceName      string
	CallbackThreads   int
	PollInterval      time.Duration
	HeartbeatInterval time.Duration
}

func (c *Client) SetNameServerAddr(addr string)              { c.NameServerAddr = addr }
func (c *Client) SetClientIP(ip string)                      { c.ClientIP = ip }
func (c *Client) SetInstanceName(name string)                { c.InstanceName = name }
func (c *Client) SetCallbackExecutorThreads(n int)           { c.CallbackThreads = n }
func (c *Client) SetPollNameServerInterval(d time.Duration)  { c.PollInterval = d }
func (c *Client) SetHeartbeatBrokerInterval(d time.Duration) { c.HeartbeatInterval = d }

// Producer is a recording test double for core.ProducerSettings.
type Producer struct {
	Client

	Group        string
	SendRetries  int
	AsyncRetries int
	SendTimeout  time.Duration
}

func (p *Producer) SetProducerGroup(group string)  { p.Group = group }
func (p *Producer) SetSendRetryTimes(n int)        { p.SendRetries = n }
func (p *Producer) SetAsyncSendRetryTimes(n int)   { p.AsyncRetries = n }
func (p *Producer) SetSendTimeout(d time.Duration) { p.SendTimeout = d }

// Consumer is a recording test double for core.ConsumerSettings.
// Setting SubscribeErr makes Subscribe fail without recording the
// subscription.
type Consumer struct {
	Client

	Group            string
	PersistInterval  time.Duration
	ThreadMin        int
	ThreadMax        int
	Orderly          bool
	OffsetStart      core.OffsetStart
	ConsumeTimestamp string

	Topic          string
	Tags           string
	SubscribeCalls int
	SubscribeErr   error
}

func (c *Consumer) SetConsumerGroup(group string)            { c.Group = group }
func (c *Consumer) SetOffsetPersistInterval(d time.Duration) { c.PersistInterval = d }
func (c *Consumer) SetConsumeThreadMin(n int)                { c.ThreadMin = n }
func (c *Consumer) SetConsumeThreadMax(n int)                { c.ThreadMax = n }
func (c *Consumer) SetConsumeOrderly(orderly bool)           { c.Orderly = orderly }
func (c *Consumer) SetOffsetStart(start core.OffsetStart)    { c.OffsetStart = start }
func (c *Consumer) SetConsumeTimestamp(ts string)            { c.ConsumeTimestamp = ts }

func (c *Consumer) Subscribe(topic, tags string) error {
	c.SubscribeCalls++
	if c.SubscribeErr != nil {
		return c.SubscribeErr
	}
	c.Topic, c.Tags = topic, tags
	return nil
}
