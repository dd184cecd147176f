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

// Sim is an in-memory register backend with the same layout as the
// hardware window, for testing the dispatch path and for example
// programs run off-target. Assert and Deassert play the part of the
// peripherals; Step plays the part of the trap vector.
type Sim struct {
	regfile
	clears [nLines + 1]int
}

// NewSim creates a simulated register block with all state zeroed.
func NewSim() *Sim {
	return &Sim{regfile: regfile{mem: make([]byte, windowSize)}}
}

// ClearLine counts clear writes per line in addition to the register
// effect, so tests can check the once-per-trap clearing contract.
func (s *Sim) ClearLine(l Line) {
	s.clears[l]++
	s.regfile.ClearLine(l)
}

// Clears returns how many times the line's clear bit has been written.
func (s *Sim) Clears(l Line) int {
	return s.clears[l]
}

// Assert raises the source's pending status bit.
func (s *Sim) Assert(src Source) {
	reg := uintptr(rStatus0)
	bit := uint(src)
	if bit >= 32 {
		reg = rStatus1
		bit -= 32
	}
	s.wr(reg, s.rd(reg)|1<<bit)
}

// Deassert drops the source's pending status bit, as a level triggered
// peripheral does when its condition resolves.
func (s *Sim) Deassert(src Source) {
	reg := uintptr(rStatus0)
	bit := uint(src)
	if bit >= 32 {
		reg = rStatus1
		bit -= 32
	}
	s.wr(reg, s.rd(reg)&^(1<<bit))
}

// FiringLine returns the enabled CPU line the hardware would trap on
// next: the highest priority line with a pending mapped source. The
// second value is false when nothing is pending.
func (s *Sim) FiringLine() (Line, bool) {
	status := s.Status()
	enable := s.rd(rEnable)
	best := Line(0)
	bestPri := PriorityNone
	for !status.empty() {
		n := status.firstSet()
		status.clear(n)
		l := s.MappedLine(Source(n))
		if l == 0 || enable&(1<<uint(l)) == 0 {
			continue
		}
		if p := s.LinePriority(l); p > bestPri || (p == bestPri && l < best) {
			best = l
			bestPri = p
		}
	}
	if best == 0 {
		return 0, false
	}
	return best, true
}

// Step synthesizes one hardware trap entry: if a line should fire, fill
// in the frame's cause register and run the controller's trap entry.
// It reports whether a trap was taken.
func (s *Sim) Step(c *Controller, f *TrapFrame) bool {
	l, ok := s.FiringLine()
	if !ok {
		return false
	}
	f.Mcause = causeInterrupt | uint32(l)
	c.HandleTrap(f)
	return true
}
