package rabbitmq

import amqp "github.com/rabbitmq/amqp091-go"

// Tag extracts the tag of a delivery, which travels as the routing key.
func Tag(d amqp.Delivery) string { return d.RoutingKey }

// Accept reports whether the subscription admits d. Queue bindings filter
// on the server, so this only rejects deliveries reaching the queue
// through a broader binding.
func (c *Consumer) Accept(d amqp.Delivery) bool {
	if c.filter == nil || c.filter.MatchAll() {
		return true
	}
	return c.filter.Match(d.RoutingKey)
}
