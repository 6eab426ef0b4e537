// https://github.com/usbarmory/tamago
//
// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Command firstfitsim drives the firstfit allocator over host-mapped memory,
// standing in for the physical RAM a bare-metal caller would hand it. It
// mmaps one anonymous mapping and carves two regions out of it, separated by
// a gap that neither region covers, so they stitch together as two
// independent Regions rather than one contiguous one, and
// runs a small allocate/resize/release workload while printing the running
// available-bytes counter.
package main

import (
	"fmt"
	"log"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/coldiron/firstfit"
)

func mapRegion(size int) (firstfit.Region, []byte) {
	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		log.Fatalf("mmap: %v", err)
	}

	return firstfit.Region{
		Start: uintptr(unsafe.Pointer(&buf[0])),
		Size:  uintptr(size),
	}, buf
}

func main() {
	const regionSize = 64 * 1024

	// One mapping three regions long: its first and last thirds become the
	// two Regions and its middle third is the gap between them.
	whole, buf := mapRegion(3 * regionSize)
	defer unix.Munmap(buf)

	r1 := firstfit.Region{Start: whole.Start, Size: regionSize}
	r2 := firstfit.Region{Start: whole.Start + 2*regionSize, Size: regionSize}

	regions := []firstfit.Region{r1, r2}

	h := &firstfit.Heap{}
	admitted := h.Init(regions)
	fmt.Printf("admitted %d region(s), %d bytes available\n", admitted, h.Available())

	var live []uintptr

	for i := 0; i < 8; i++ {
		n := uintptr((i + 1) * 256)

		ptr := h.ZeroAllocate(1, n)
		if ptr == 0 {
			fmt.Printf("allocate %d: heap exhausted\n", n)
			break
		}

		copy(firstfit.Bytes(ptr, int(n)), []byte(fmt.Sprintf("block-%d", i)))
		live = append(live, ptr)

		fmt.Printf("allocated %d bytes at %#x, %d available\n", n, ptr, h.Available())
	}

	for i, ptr := range live {
		if i%2 == 0 {
			continue
		}

		grown := h.Resize(ptr, 4096)
		if grown == 0 {
			fmt.Printf("resize of block %d failed, leaving it in place\n", i)
			continue
		}

		live[i] = grown
		fmt.Printf("resized block %d to 4096 bytes at %#x\n", i, grown)
	}

	for _, ptr := range live {
		h.Release(ptr)
	}

	fmt.Printf("released everything, %d bytes available\n", h.Available())
}
