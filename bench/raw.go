package bench

import (
	"fmt"

	"github.com/weiihann/packbench/alloc"
)

// RawByteStore holds n boolean flags as one byte per flag: 0 is false,
// 1 is true.
type RawByteStore struct {
	allocator *alloc.Allocator
	buf       *alloc.Buffer
	data      []byte
}

// NewRawByteStore allocates storage for n flags, all false. The allocator
// must hand out single-byte elements.
func NewRawByteStore(a *alloc.Allocator, n int) (*RawByteStore, error) {
	if a.ElemSize() != 1 {
		return nil, fmt.Errorf(
			"bench: raw store needs a 1-byte allocator, got %d bytes",
			a.ElemSize(),
		)
	}

	buf, err := a.Allocate(n)
	if err != nil {
		return nil, fmt.Errorf("allocate %d byte slots: %w", n, err)
	}

	return &RawByteStore{
		allocator: a,
		buf:       buf,
		data:      buf.Bytes(),
	}, nil
}

// Len returns the number of flags.
func (s *RawByteStore) Len() int { return len(s.data) }

// FootprintBytes returns the size of the backing storage.
func (s *RawByteStore) FootprintBytes() uint64 { return uint64(s.buf.Size()) }

// Get returns flag i.
func (s *RawByteStore) Get(i int) bool { return s.data[i] != 0 }

// Set stores flag i.
func (s *RawByteStore) Set(i int, v bool) {
	if v {
		s.data[i] = 1
	} else {
		s.data[i] = 0
	}
}

// Flip toggles flag i.
func (s *RawByteStore) Flip(i int) { s.data[i] = 1 - s.data[i] }

// Close releases the backing storage. Safe to call more than once.
func (s *RawByteStore) Close() error {
	s.data = nil

	return s.allocator.Deallocate(s.buf)
}
