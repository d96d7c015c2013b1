package http

import (
	"bufio"
	"errors"
	"io"
	"runtime"
	"sync/atomic"
)

var (
	ErrFull  = errors.New("ring buffer is full")
	ErrEmpty = errors.New("ring buffer is empty")
)

// readerPool recycles connection readers between connections.
type readerPool struct {
	ready RingBuffer[*bufio.Reader]
}

func newReaderPool() *readerPool {
	return &readerPool{ready: NewRingBuffer[*bufio.Reader]()}
}

func (p *readerPool) Get(r io.Reader) *bufio.Reader {
	br, err := p.ready.Dequeue()
	if err != nil {
		return bufio.NewReaderSize(r, DefaultReadBufferSize)
	}

	br.Reset(r)
	return br
}

func (p *readerPool) Put(br *bufio.Reader) {
	br.Reset(nil)
	// A full pool drops the reader.
	_ = p.ready.Enqueue(br)
}

type RingBuffer[T any] struct {
	buffer [ReaderPoolSize]slot[T]
	mask   uint64
	enqPos uint64
	deqPos uint64
}

type slot[T any] struct {
	sequence uint64
	value    T
}

// NewRingBuffer creates a lock-free multi-producer multi-consumer queue
// holding up to ReaderPoolSize values.
func NewRingBuffer[T any]() RingBuffer[T] {
	var buf [ReaderPoolSize]slot[T]
	for i := range buf {
		buf[i].sequence = uint64(i)
	}
	return RingBuffer[T]{
		buffer: buf,
		mask:   ReaderPoolSize - 1,
	}
}

// Enqueue adds an item to the ring buffer
func (q *RingBuffer[T]) Enqueue(val T) error {
	for {
		pos := atomic.LoadUint64(&q.enqPos)
		slot := &q.buffer[pos&q.mask]

		seq := atomic.LoadUint64(&slot.sequence)
		delta := int64(seq) - int64(pos)

		if delta == 0 {
			if atomic.CompareAndSwapUint64(&q.enqPos, pos, pos+1) {
				slot.value = val
				atomic.StoreUint64(&slot.sequence, pos+1)
				return nil
			}
		} else if delta < 0 {
			return ErrFull
		} else {
			runtime.Gosched()
		}
	}
}

// Dequeue removes and returns the oldest item
func (q *RingBuffer[T]) Dequeue() (T, error) {
	var zero T
	for {
		pos := atomic.LoadUint64(&q.deqPos)
		slot := &q.buffer[pos&q.mask]

		seq := atomic.LoadUint64(&slot.sequence)
		delta := int64(seq) - int64(pos+1)

		if delta == 0 {
			if atomic.CompareAndSwapUint64(&q.deqPos, pos, pos+1) {
				val := slot.value
				slot.value = zero
				atomic.StoreUint64(&slot.sequence, pos+q.mask+1)
				return val, nil
			}
		} else if delta < 0 {
			return zero, ErrEmpty
		} else {
			runtime.Gosched()
		}
	}
}
