// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package intc

import (
	"math/bits"
	"sync/atomic"
	"unsafe"
)

const (
	nLines      = 31 // CPU interrupt lines 1..31
	nPriorities = 15 // priority levels 1..15; 0 disables
	nVectored   = 15 // lines 1..15 are one bucket per priority

	// Interrupt matrix register offsets.
	rMapBase = 0x0000 // one 32 bit slot per peripheral source
	rStatus0 = 0x00F8 // pending status, sources 0-31
	rStatus1 = 0x00FC // pending status, sources 32-63
	rEnable  = 0x0104 // line enable, one bit per CPU line
	rType    = 0x0108 // line type, 0=level 1=edge
	rClear   = 0x010C // line clear, write one to clear
	rPriBase = 0x0118 // one 32 bit priority slot per CPU line

	windowSize = 0x200
)

// Line identifies one of the CPU interrupt lines (1..31).
type Line int

// Priority is the interrupt priority of a CPU line. Higher values take
// precedence. PriorityNone disables the line and is rejected by Enable.
type Priority int

const PriorityNone Priority = 0

// Kind selects the signalling type of a CPU line. Level lines are cleared
// by the hardware when the source deasserts; Edge lines latch until
// software clears them.
type Kind int

const (
	Level Kind = iota
	Edge
)

// Status is the aggregate pending state of all peripheral sources, built
// from the two 32 bit status registers. Bit i is set iff source i has a
// pending, enabled interrupt condition.
type Status [2]uint64

func (s Status) empty() bool {
	return s[0] == 0 && s[1] == 0
}

func (s Status) test(n int) bool {
	return s[n/64]&(1<<uint(n%64)) != 0
}

func (s *Status) set(n int) {
	s[n/64] |= 1 << uint(n%64)
}

func (s *Status) clear(n int) {
	s[n/64] &^= 1 << uint(n%64)
}

func (s Status) and(o Status) Status {
	return Status{s[0] & o[0], s[1] & o[1]}
}

// firstSet returns the lowest set bit position, or -1 if none is set.
func (s Status) firstSet() int {
	if s[0] != 0 {
		return bits.TrailingZeros64(s[0])
	}
	if s[1] != 0 {
		return 64 + bits.TrailingZeros64(s[1])
	}
	return -1
}

// Registers is the interrupt matrix register block. The mutating
// operations act on exactly one register or register slot and perform no
// validation; incorrect identifiers are a caller contract violation.
// MappedLine and LinePriority are the two reads dispatch needs to walk
// the live mapping state.
type Registers interface {
	MapSource(s Source, l Line)
	UnmapSource(s Source)
	MappedLine(s Source) Line
	EnableLine(l Line)
	SetKind(l Line, k Kind)
	SetPriority(l Line, p Priority)
	LinePriority(l Line) Priority
	ClearLine(l Line)
	Status() Status
}

// regfile implements Registers over a byte-addressed register window.
// The window may be a mapped device (mmio.go) or plain memory (sim.go);
// the register layout is identical either way.
type regfile struct {
	mem []byte
}

// MapSource routes the peripheral source to a CPU line. Any previous
// routing for the source is overwritten.
func (r *regfile) MapSource(s Source, l Line) {
	r.wr(rMapBase+4*uintptr(s), uint32(l))
}

// UnmapSource removes the source from any line's pending computation.
// Slot 0 is the hardware's "unrouted" sentinel.
func (r *regfile) UnmapSource(s Source) {
	r.wr(rMapBase+4*uintptr(s), 0)
}

func (r *regfile) MappedLine(s Source) Line {
	return Line(r.rd(rMapBase + 4*uintptr(s)))
}

// EnableLine sets the line's enable bit without disturbing other lines.
func (r *regfile) EnableLine(l Line) {
	r.wr(rEnable, r.rd(rEnable)|1<<uint(l))
}

func (r *regfile) SetKind(l Line, k Kind) {
	v := r.rd(rType) &^ (1 << uint(l))
	if k == Edge {
		v |= 1 << uint(l)
	}
	r.wr(rType, v)
}

func (r *regfile) SetPriority(l Line, p Priority) {
	r.wr(rPriBase+4*uintptr(l), uint32(p))
}

func (r *regfile) LinePriority(l Line) Priority {
	return Priority(r.rd(rPriBase + 4*uintptr(l)))
}

// ClearLine clears the line's pending bit. Required for edge lines,
// harmless for level lines.
func (r *regfile) ClearLine(l Line) {
	r.wr(rClear, 1<<uint(l))
}

// Status concatenates the two 32 bit pending status registers.
func (r *regfile) Status() Status {
	lo := uint64(r.rd(rStatus0)) | uint64(r.rd(rStatus1))<<32
	return Status{lo, 0}
}

// rd reads one 32 bit register from the window.
func (r *regfile) rd(offs uintptr) uint32 {
	return atomic.LoadUint32((*uint32)(unsafe.Pointer(&r.mem[offs])))
}

// wr writes one 32 bit register to the window.
func (r *regfile) wr(offs uintptr, v uint32) {
	atomic.StoreUint32((*uint32)(unsafe.Pointer(&r.mem[offs])), v)
}
