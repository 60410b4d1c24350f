package utils

import (
	"log/slog"
	"sync"
)

// BATCH_SIZE matches the DynamoDB BatchWriteItem limit.
const BATCH_SIZE = 25

// BatchBuffer collects items from concurrent producers and hands them out in
// batches of at most size items.
type BatchBuffer[T any] struct {
	buffer     []T
	size       int
	bufferLock sync.Mutex
}

func NewBatchBuffer[T any](size int) *BatchBuffer[T] {
	if size <= 0 {
		size = BATCH_SIZE
	}
	return &BatchBuffer[T]{
		buffer: make([]T, 0, size),
		size:   size,
	}
}

// Add appends item and returns a full batch when the buffer reaches its size,
// or nil otherwise. The returned batch is owned by the caller.
func (b *BatchBuffer[T]) Add(item T) []T {
	b.bufferLock.Lock()
	defer b.bufferLock.Unlock()

	b.buffer = append(b.buffer, item)
	if len(b.buffer) < b.size {
		return nil
	}
	return b.takeLocked()
}

// GetAndClear returns whatever is buffered, or nil when empty.
func (b *BatchBuffer[T]) GetAndClear() []T {
	b.bufferLock.Lock()
	defer b.bufferLock.Unlock()

	if len(b.buffer) == 0 {
		return nil
	}
	return b.takeLocked()
}

func (b *BatchBuffer[T]) takeLocked() []T {
	batch := b.buffer
	b.buffer = make([]T, 0, b.size)
	return batch
}

func (b *BatchBuffer[T]) Size() int {
	b.bufferLock.Lock()
	defer b.bufferLock.Unlock()
	return len(b.buffer)
}

func LogBatchProcessing(batchType string, batchSize int) {
	slog.Info("[BatchBuffer] Processing batch",
		slog.String("type", batchType),
		slog.Int("batch_size", batchSize))
}
