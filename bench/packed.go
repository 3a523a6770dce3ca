package bench

import (
	"fmt"
	"unsafe"

	"github.com/weiihann/packbench/alloc"
)

// BlockWidth is the number of flags packed into one storage block. Flag i
// lives in block i/BlockWidth at bit offset i%BlockWidth.
const BlockWidth = 64

// blockBytes is the size of one storage block.
const blockBytes = 8

// PackedBooleanStore holds n boolean flags at one bit per flag, packed into
// 64-bit blocks. Every access decodes the flag's block and bit offset;
// writes read-modify-write the whole containing block.
type PackedBooleanStore struct {
	allocator *alloc.Allocator
	buf       *alloc.Buffer
	blocks    []uint64
	n         int
}

// NewPackedBooleanStore allocates block storage for n flags, all false. The
// allocator must hand out block-sized (8-byte) elements; pre-faulting then
// touches the block array, which is 64x smaller than the raw case's buffer
// for the same flag count.
func NewPackedBooleanStore(a *alloc.Allocator, n int) (*PackedBooleanStore, error) {
	if a.ElemSize() != blockBytes {
		return nil, fmt.Errorf(
			"bench: packed store needs a %d-byte allocator, got %d bytes",
			blockBytes, a.ElemSize(),
		)
	}

	nblocks := (n + BlockWidth - 1) / BlockWidth

	buf, err := a.Allocate(nblocks)
	if err != nil {
		return nil, fmt.Errorf("allocate %d blocks: %w", nblocks, err)
	}

	var blocks []uint64
	if nblocks > 0 {
		raw := buf.Bytes()
		blocks = unsafe.Slice((*uint64)(unsafe.Pointer(&raw[0])), nblocks)
	}

	return &PackedBooleanStore{
		allocator: a,
		buf:       buf,
		blocks:    blocks,
		n:         n,
	}, nil
}

// Len returns the number of flags.
func (s *PackedBooleanStore) Len() int { return s.n }

// FootprintBytes returns the size of the backing block array.
func (s *PackedBooleanStore) FootprintBytes() uint64 {
	return uint64(s.buf.Size())
}

// Get returns flag i.
func (s *PackedBooleanStore) Get(i int) bool {
	return s.blocks[i>>6]&(1<<(uint(i)&63)) != 0
}

// Set stores flag i, leaving sibling bits in the containing block untouched.
func (s *PackedBooleanStore) Set(i int, v bool) {
	if v {
		s.blocks[i>>6] |= 1 << (uint(i) & 63)
	} else {
		s.blocks[i>>6] &^= 1 << (uint(i) & 63)
	}
}

// Flip toggles flag i.
func (s *PackedBooleanStore) Flip(i int) {
	s.blocks[i>>6] ^= 1 << (uint(i) & 63)
}

// Close releases the backing storage. Safe to call more than once.
func (s *PackedBooleanStore) Close() error {
	s.blocks = nil

	return s.allocator.Deallocate(s.buf)
}
