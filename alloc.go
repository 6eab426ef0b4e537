// https://github.com/usbarmory/tamago
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package firstfit

// splitThreshold, in units of headerSize, bounds the remainder beyond the
// requested need: a chosen free block's tail is carved off into a block of
// its own only when that remainder exceeds splitThreshold*headerSize, and is
// otherwise left in the allocation as internal fragmentation.
const splitThreshold = 2

// Allocate reserves a block of at least n payload bytes using a first-fit
// walk of the free list, splitting the chosen block's tail back into the
// free list when the remainder is large enough to be independently useful.
// It returns the payload address, or 0 if the heap is uninitialized, n is
// zero, n already carries the allocated bit, or no free block is large
// enough.
func (h *Heap) Allocate(n uintptr) uintptr {
	if !h.initialized || n == 0 {
		return 0
	}

	if n&allocBit != 0 {
		return 0
	}

	payload := align(n)
	if payload&allocBit != 0 {
		return 0
	}

	need := payload + headerSize
	if need&allocBit != 0 {
		return 0
	}

	prev := &h.start
	curr := h.start.next

	for curr != nil && curr.size < need {
		prev = curr
		curr = curr.next
	}

	if curr == nil {
		return 0
	}

	prev.next = curr.next

	full := curr.size
	h.available -= full

	if full-need > splitThreshold*headerSize {
		tail := headerAt(addrOf(curr) + need)
		tail.size = full - need
		tail.next = nil

		curr.size = need

		h.insertFree(tail)
	}

	// curr.size is need if the tail was split off, or the block's full
	// original span otherwise: any remainder too small to be worth
	// splitting stays inside the allocation as internal fragmentation,
	// and the block's physical footprint, not the caller's request,
	// anchors the next block's address for coalescing.
	curr.markAllocated(curr.size)

	return addrOf(curr) + headerSize
}
