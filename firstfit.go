// Package firstfit implements a general-purpose, boundary-tag-free, first-fit
// memory allocator for bare-metal and embedded environments where no host
// heap exists. Callers hand it one or more contiguous byte regions carved
// out of physical memory at startup; it then serves variable-size
// allocation, resize, and release requests against those regions, in the
// style of the standard C heap primitives, relying on no operating-system
// facility.
//
// The allocator assumes serialized access: concurrent allocation is not
// supported, and a caller running under interrupts or multiple goroutines
// must wrap a Heap with its own mutex or critical section.
//
// https://github.com/usbarmory/tamago
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.
package firstfit

// Heap is a single allocator instance over one or more admitted Regions. Its
// zero value is valid and uninitialized; call Init or AssignMem before use.
type Heap struct {
	// start is the process-wide dummy free-list head: size is always 0,
	// next is nil while no region is admitted, and otherwise the
	// lowest-address block on the free list, which is a zero-size
	// sentinel when no lower free block remains.
	start header

	// end points at the trailing sentinel of the last admitted region,
	// the permanent terminal anchor of the free list.
	end *header

	// available is the sum of payload-plus-header bytes currently on the
	// free list, excluding the leading dummy and per-region sentinels.
	available uintptr

	regionsCount int
	initialized  bool
}

// Available returns the number of payload-plus-header bytes currently free
// across all admitted regions.
func (h *Heap) Available() uintptr {
	return h.available
}

// Regions returns the number of regions admitted by Init/AssignMem.
func (h *Heap) Regions() int {
	return h.regionsCount
}

// Initialized reports whether Init/AssignMem has succeeded on this heap.
func (h *Heap) Initialized() bool {
	return h.initialized
}

var defaultHeap = &Heap{}

// Default returns the global Heap instance used by the package-level
// functions.
func Default() *Heap {
	return defaultHeap
}

// Init is the equivalent of Heap.Init on the global heap.
func Init(regions []Region) int {
	return defaultHeap.Init(regions)
}

// AssignMem is the equivalent of Heap.AssignMem on the global heap.
func AssignMem(regions []Region) int {
	return defaultHeap.AssignMem(regions)
}

// Allocate is the equivalent of Heap.Allocate on the global heap.
func Allocate(n uintptr) uintptr {
	return defaultHeap.Allocate(n)
}

// ZeroAllocate is the equivalent of Heap.ZeroAllocate on the global heap.
func ZeroAllocate(nitems, size uintptr) uintptr {
	return defaultHeap.ZeroAllocate(nitems, size)
}

// Resize is the equivalent of Heap.Resize on the global heap.
func Resize(ptr uintptr, size uintptr) uintptr {
	return defaultHeap.Resize(ptr, size)
}

// Release is the equivalent of Heap.Release on the global heap.
func Release(ptr uintptr) {
	defaultHeap.Release(ptr)
}
