package interfaces

// EventPublisher delivers audit events to an external sink. Delivery is at
// least once; implementations must not assume events arrive in order.
type EventPublisher interface {
	Publish(topic string, event any) error
}
