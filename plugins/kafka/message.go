package kafka

import "github.com/segmentio/kafka-go"

// TagHeader is the message header carrying a message's tag. Kafka has no
// native tag dimension, so tags travel as headers under this key.
const TagHeader = "mq.tag"

// Tagged returns msg carrying the given tag, replacing one already
// present.
func Tagged(msg kafka.Message, tag string) kafka.Message {
	headers := make([]kafka.Header, 0, len(msg.Headers)+1)
	for _, h := range msg.Headers {
		if h.Key != TagHeader {
			headers = append(headers, h)
		}
	}
	msg.Headers = append(headers, kafka.Header{Key: TagHeader, Value: []byte(tag)})
	return msg
}

// Tag extracts the tag of msg, or "" when it carries none.
func Tag(msg kafka.Message) string {
	for _, h := range msg.Headers {
		if h.Key == TagHeader {
			return string(h.Value)
		}
	}
	return ""
}

// Accept reports whether the subscription admits msg. The broker does not
// filter on tags, so consumers drop non-matching messages after the read.
func (c *Consumer) Accept(msg kafka.Message) bool {
	if c.filter == nil || c.filter.MatchAll() {
		return true
	}
	return c.filter.Match(Tag(msg))
}
