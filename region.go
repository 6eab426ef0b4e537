// https://github.com/usbarmory/tamago
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package firstfit

// Region describes a contiguous range of memory, carved out of physical RAM
// by the caller at startup, that Init/AssignMem admits into the heap.
type Region struct {
	Start uintptr
	Size  uintptr
}

// Init validates and admits regions into the heap, stitching them into a
// single address-ordered free list. It is one-shot: calling it on an
// already-initialized Heap, or passing regions that are not in strictly
// ascending, non-overlapping address order (judged on the caller's declared
// bounds, before alignment normalization), fails the whole call and leaves
// the heap untouched. It returns the number of regions admitted, which may
// be smaller than len(regions) if some are rounded away to nothing by
// alignment, or 0 on failure.
func (h *Heap) Init(regions []Region) int {
	if h.initialized {
		return 0
	}

	for i := 1; i < len(regions); i++ {
		prev := regions[i-1]
		if regions[i].Start <= prev.Start+prev.Size {
			return 0
		}
	}

	var prevEnd *header
	admitted := 0

	for _, r := range regions {
		start := align(r.Start)
		size := r.Size - (start - r.Start)
		size = alignDown(size)

		if size < headerSize+Align {
			continue
		}

		end := headerAt(start + size - headerSize)
		end.size = 0
		end.next = nil

		lead := headerAt(start)
		lead.size = size - headerSize
		lead.next = end

		if admitted == 0 {
			h.start.next = lead
			h.start.size = 0
		} else {
			prevEnd.next = lead
		}

		h.end = end
		h.available += lead.size
		admitted++
		prevEnd = end
	}

	h.initialized = true
	h.regionsCount = admitted

	return admitted
}

// AssignMem is an alias of Init.
func (h *Heap) AssignMem(regions []Region) int {
	return h.Init(regions)
}
