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

// A extension instruction fields.
const (
	amoWidthW = 2 // funct3: 32 bit operation

	// funct5 values
	fnAmoAdd  = 0x00
	fnAmoSwap = 0x01
	fnLr      = 0x02
	fnSc      = 0x03
	fnAmoXor  = 0x04
	fnAmoOr   = 0x08
	fnAmoAnd  = 0x0c
	fnAmoMin  = 0x10
	fnAmoMax  = 0x14
	fnAmoMinu = 0x18
	fnAmoMaxu = 0x1c
)

// emulateAtomic is the built in atomic emulation routine: it decodes
// the A extension instruction at the frame's PC, performs the memory
// operation, writes the old value to rd and advances PC past the
// instruction. Only the 32 bit forms exist on this core; anything else
// is reported unhandled and falls through to the exception handler.
func (c *Controller) emulateAtomic(ef *EmulationFrame, mem Memory) bool {
	insn := mem.Load32(ef.PC)
	rd := (insn >> 7) & 0x1f
	rs1 := (insn >> 15) & 0x1f
	rs2 := (insn >> 20) & 0x1f
	funct3 := (insn >> 12) & 0x7
	funct5 := insn >> 27

	if funct3 != amoWidthW {
		return false
	}
	addr := ef.x(rs1)

	switch funct5 {
	case fnLr:
		ef.setX(rd, mem.Load32(addr))
		c.reserved = true
		c.reservation = addr
	case fnSc:
		if c.reserved && c.reservation == addr {
			mem.Store32(addr, ef.x(rs2))
			ef.setX(rd, 0)
		} else {
			ef.setX(rd, 1)
		}
		c.reserved = false
	default:
		// Read-modify-write forms. Any of these invalidates an
		// outstanding reservation.
		c.reserved = false
		old := mem.Load32(addr)
		val := ef.x(rs2)
		var result uint32
		switch funct5 {
		case fnAmoSwap:
			result = val
		case fnAmoAdd:
			result = old + val
		case fnAmoXor:
			result = old ^ val
		case fnAmoAnd:
			result = old & val
		case fnAmoOr:
			result = old | val
		case fnAmoMin:
			result = val
			if int32(old) < int32(val) {
				result = old
			}
		case fnAmoMax:
			result = val
			if int32(old) > int32(val) {
				result = old
			}
		case fnAmoMinu:
			result = val
			if old < val {
				result = old
			}
		case fnAmoMaxu:
			result = val
			if old > val {
				result = old
			}
		default:
			return false
		}
		mem.Store32(addr, result)
		ef.setX(rd, old)
	}

	ef.PC += 4
	return true
}
