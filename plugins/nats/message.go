package nats

import (
	"strings"

	"github.com/nats-io/nats.go/jetstream"
)

// Tag extracts the tag from a delivered message's subject, the token
// after the topic prefix. The untagged "_" token reads back as "".
func Tag(msg jetstream.Msg) string {
	subject := msg.Subject()
	tag := subject[strings.LastIndexByte(subject, '.')+1:]
	if tag == "_" {
		return ""
	}
	return tag
}

// Accept reports whether the subscription admits msg. Filter subjects
// already narrow delivery on the server; this re-checks messages arriving
// through a wider subscription.
func (c *Consumer) Accept(msg jetstream.Msg) bool {
	if c.filter == nil || c.filter.MatchAll() {
		return true
	}
	return c.filter.Match(Tag(msg))
}
