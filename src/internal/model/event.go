package model

// Event is anything publishable to kafka with a partition key.
type Event interface {
	GetId() string
}
