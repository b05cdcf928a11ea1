package queue

import "errors"

// ErrQueueFull is returned by Enqueue when the queue is at capacity
var ErrQueueFull = errors.New("queue is full")

// Queue represents a basic queue.
// Implementations must be safe for concurrent use.
type Queue interface {
	Enqueue(item interface{}) error
	Dequeue() (interface{}, error)
	Size() int
	ReadAllMessages() ([]interface{}, error)
	ClearQueue()
}
