// https://github.com/usbarmory/tamago
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package firstfit

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// newTestRegion carves a Region out of a freshly allocated, GC-owned byte
// slice. The slice is returned alongside the Region so the caller can keep
// it referenced for as long as the Region remains in use: once converted to
// a uintptr, the address no longer keeps the backing array alive on its own.
func newTestRegion(t *testing.T, size int) (Region, []byte) {
	t.Helper()

	buf := make([]byte, size)

	return Region{
		Start: uintptr(unsafe.Pointer(&buf[0])),
		Size:  uintptr(size),
	}, buf
}

// subRegion carves a Region at the given byte offset into buf, used to
// build multiple non-overlapping regions out of a single backing array so
// their relative address order and gaps are deterministic.
func subRegion(buf []byte, offset, size int) Region {
	return Region{
		Start: uintptr(unsafe.Pointer(&buf[offset])),
		Size:  uintptr(size),
	}
}

// checkInvariants walks the free list and asserts the invariants of
// spec.md §3/§8 hold: strict address order, no two adjacent free blocks,
// every free block's size is a multiple of Align and at least H+Align, and
// available is exactly the sum of the reachable free blocks' sizes.
func checkInvariants(t *testing.T, h *Heap) {
	t.Helper()

	var sum uintptr
	var lastReal *header

	for cur := h.start.next; cur != nil; cur = cur.next {
		require.Falsef(t, cur.allocated(), "free list contains an allocated block at %#x", addrOf(cur))

		if cur.size > 0 {
			require.Zero(t, cur.size%Align, "free block size %d at %#x not a multiple of Align", cur.size, addrOf(cur))
			require.GreaterOrEqual(t, cur.size, headerSize+Align, "free block at %#x smaller than H+Align", addrOf(cur))

			if lastReal != nil {
				require.Less(t, addrOf(lastReal), addrOf(cur), "free list out of address order")
				require.NotEqual(t, addrOf(lastReal)+lastReal.size, addrOf(cur), "adjacent free blocks not coalesced")
			}

			lastReal = cur
		}

		sum += cur.size
	}

	require.Equal(t, h.available, sum, "available_bytes does not match the free list")
}
