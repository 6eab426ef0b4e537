// https://github.com/usbarmory/tamago
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package firstfit

// insertFree splices a detached free block b (allocated bit already cleared,
// size the block's full span header included) back into the address-ordered
// free list, eagerly merging it with any adjacent free neighbour so that no
// two free blocks are ever left touching.
func (h *Heap) insertFree(b *header) {
	h.available += b.size

	curr := &h.start
	for curr.next != nil && addrOf(curr.next) < addrOf(b) {
		curr = curr.next
	}

	mergedLeft := false

	if curr != &h.start && addrOf(curr)+curr.size == addrOf(b) {
		curr.size += b.size
		b = curr
		mergedLeft = true
	}

	if next := curr.next; next != nil && addrOf(b)+b.size == addrOf(next) {
		if next == h.end {
			// The global terminal sentinel is never absorbed: it must
			// remain a distinct, permanent anchor for the free list.
			b.next = next
		} else {
			b.size += next.size
			b.next = next.next
		}
	} else {
		b.next = curr.next
	}

	if !mergedLeft {
		curr.next = b
	}
}
