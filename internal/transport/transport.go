// Package transport provides the outbound message-queue connection. The
// client is constructed and connected by the process bootstrap and injected
// into the publisher; nothing in the rendering pipeline touches it.
package transport

// Publisher is the outbound side of the message queue.
type Publisher interface {
	// Publish sends one message to topic at the given QoS level and blocks
	// until the broker acknowledges it (per QoS semantics) or the send fails.
	Publish(topic string, qos byte, payload []byte) error
}
