// https://github.com/usbarmory/tamago
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package firstfit

import "unsafe"

// Release frees the block at the passed payload address, previously
// returned by Allocate, ZeroAllocate, or Resize.
//
// A nil address is a no-op. The ownership check is intentionally weak (the
// allocated bit must be set and next must be nil): it accepts any address
// whose header happens to have that shape, so a double-free or a foreign
// pointer is silently ignored rather than rejected outright.
func (h *Heap) Release(ptr uintptr) {
	if ptr == 0 {
		return
	}

	hdr := headerAt(ptr - headerSize)

	if !hdr.allocated() || hdr.next != nil {
		return
	}

	hdr.markFree()
	h.insertFree(hdr)
}

// ZeroAllocate allocates space for nitems elements of size bytes each,
// zero-initializing the payload on success. It returns 0 if nitems or size
// is zero, or if nitems*size would overflow a machine word.
func (h *Heap) ZeroAllocate(nitems, size uintptr) uintptr {
	if nitems == 0 || size == 0 {
		return 0
	}

	if nitems > ^uintptr(0)/size {
		return 0
	}

	total := nitems * size

	ptr := h.Allocate(total)
	if ptr == 0 {
		return 0
	}

	clear(Bytes(ptr, int(total)))

	return ptr
}

// Resize changes the size of the block at ptr.
//
//   - ptr == 0, size == 0: no-op, returns 0.
//   - ptr == 0, size > 0: equivalent to Allocate(size).
//   - ptr != 0, size == 0: equivalent to Release(ptr), returns 0.
//   - ptr != 0, size > 0: allocates size bytes; on success copies
//     min(old payload size, size) bytes over and releases ptr; on failure
//     returns 0 and leaves ptr valid and untouched.
//
// Resize never shrinks in place and never extends into an adjoining free
// neighbour, even when one would fit the growth: it always allocates fresh
// and copies.
func (h *Heap) Resize(ptr uintptr, size uintptr) uintptr {
	switch {
	case ptr == 0 && size == 0:
		return 0
	case ptr == 0:
		return h.Allocate(size)
	case size == 0:
		h.Release(ptr)
		return 0
	}

	hdr := headerAt(ptr - headerSize)
	oldPayload := hdr.taggedSize() - headerSize

	newPtr := h.Allocate(size)
	if newPtr == 0 {
		return 0
	}

	n := oldPayload
	if size < n {
		n = size
	}

	copy(Bytes(newPtr, int(n)), Bytes(ptr, int(n)))
	h.Release(ptr)

	return newPtr
}

// Bytes returns a slice view of the n bytes of payload starting at ptr, a
// live address previously returned by Allocate, ZeroAllocate, or Resize. It
// returns nil if ptr is 0, and panics if n exceeds the block's allocated
// span (rounded up by Allocate, not the caller's originally requested size).
func Bytes(ptr uintptr, n int) []byte {
	if ptr == 0 {
		return nil
	}

	hdr := headerAt(ptr - headerSize)
	span := hdr.taggedSize() - headerSize

	if uintptr(n) > span {
		panic("firstfit: invalid Bytes parameters")
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), n)
}
