package containers

import "errors"

var (
	ErrQueueFull  = errors.New("queue is full")
	ErrQueueEmpty = errors.New("queue is empty")
)

// RingQueue is a fixed-capacity FIFO. It is not safe for concurrent use.
type RingQueue[T any] struct {
	data       []T
	readIndex  int
	writeIndex int
	count      int
}

func NewRingQueue[T any](size int) *RingQueue[T] {
	return &RingQueue[T]{data: make([]T, size)}
}

// Enqueue adds an element to the back of the queue.
func (rq *RingQueue[T]) Enqueue(value T) error {
	if rq.IsFull() {
		return ErrQueueFull
	}
	rq.data[rq.writeIndex] = value
	rq.writeIndex = (rq.writeIndex + 1) % len(rq.data)
	rq.count++
	return nil
}

// Dequeue removes and returns the front element.
func (rq *RingQueue[T]) Dequeue() (T, error) {
	var zero T
	if rq.IsEmpty() {
		return zero, ErrQueueEmpty
	}
	value := rq.data[rq.readIndex]
	rq.data[rq.readIndex] = zero
	rq.readIndex = (rq.readIndex + 1) % len(rq.data)
	rq.count--
	return value, nil
}

// Peek returns the front element without removing it.
func (rq *RingQueue[T]) Peek() (T, error) {
	if rq.IsEmpty() {
		var zero T
		return zero, ErrQueueEmpty
	}
	return rq.data[rq.readIndex], nil
}

func (rq *RingQueue[T]) IsEmpty() bool { return rq.count == 0 }

func (rq *RingQueue[T]) IsFull() bool { return rq.count == len(rq.data) }

func (rq *RingQueue[T]) Len() int { return rq.count }
