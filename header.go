// https://github.com/usbarmory/tamago
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package firstfit

import (
	"math/bits"
	"unsafe"

	tbits "github.com/coldiron/firstfit/bits"
)

// Align is the global alignment constant, a power of two not smaller than a
// machine word. All block base addresses and all block sizes are multiples
// of Align.
const Align = unsafe.Sizeof(uintptr(0))

// header is the in-band metadata every managed block carries at its base.
//
// For a free block, next links to the next free block in address-ascending
// order and size is the block's total span, header included. For an
// allocated block, next is always nil and size carries the same total span
// with allocBit set.
type header struct {
	next *header
	size uintptr
}

// headerSize is the machine size of header, rounded up to Align.
var headerSize = align(unsafe.Sizeof(header{}))

// allocBit is the mask stolen from the top bit of a block's size word,
// bounding any single allocation below half the address-space width.
const allocBit = uintptr(1) << uint(bits.UintSize-1)

// align rounds x up to the next multiple of Align.
func align(x uintptr) uintptr {
	return (x + Align - 1) &^ (Align - 1)
}

// alignDown rounds x down to a multiple of Align.
func alignDown(x uintptr) uintptr {
	return x &^ (Align - 1)
}

// addrOf returns the numeric address of a header.
func addrOf(h *header) uintptr {
	return uintptr(unsafe.Pointer(h))
}

// headerAt reinterprets the bytes at addr as a header, in place.
func headerAt(addr uintptr) *header {
	return (*header)(unsafe.Pointer(addr))
}

// allocated reports whether size carries the allocated bit.
func (h *header) allocated() bool {
	return tbits.Get(&h.size, bits.UintSize-1, 1) == 1
}

// taggedSize returns size with the allocated bit masked off.
func (h *header) taggedSize() uintptr {
	return h.size &^ allocBit
}

// markAllocated sets size to span with the allocated bit set and detaches
// the block from the free list.
func (h *header) markAllocated(span uintptr) {
	h.size = span
	tbits.Set(&h.size, bits.UintSize-1)
	h.next = nil
}

// markFree clears the allocated bit, leaving size as the block's free span.
func (h *header) markFree() {
	tbits.Clear(&h.size, bits.UintSize-1)
}
