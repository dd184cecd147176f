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
	"testing"

	"github.com/matryer/is"
)

// amo assembles an A extension instruction (W width).
func amo(funct5, rd, rs1, rs2 uint32) uint32 {
	return funct5<<27 | rs2<<20 | rs1<<15 | amoWidthW<<12 | rd<<7 | amoOpcode
}

// excFrame is a trap frame with distinct values in every register, about
// to execute the instruction at pc after a synchronous fault.
func excFrame(pc uint32) TrapFrame {
	f := TrapFrame{
		RA: 101, T0: 102, T1: 103, T2: 104, T3: 105, T4: 106, T5: 107, T6: 108,
		A0: 109, A1: 110, A2: 111, A3: 112, A4: 113, A5: 114, A6: 115, A7: 116,
		S0: 117, S1: 118, S2: 119, S3: 120, S4: 121, S5: 122, S6: 123, S7: 124,
		S8: 125, S9: 126, S10: 127, S11: 128,
		GP: 129, TP: 130, SP: 131,
	}
	f.PC = pc
	f.Mcause = 7 // store access fault
	return f
}

func TestAtomicRoundTrip(t *testing.T) {
	is := is.New(t)

	mem := NewRAM(0, 4096)
	// amoadd.w a0, a1, (a2)
	mem.LoadProgram(0x100, []uint32{amo(fnAmoAdd, 10, 12, 11)})

	c, _ := openSim(t, NewConfig().Memory(mem))

	f := excFrame(0x100)
	f.A1 = 2
	f.A2 = 0x800
	mem.Store32(0x800, 40)
	want := f

	c.HandleTrap(&f)

	is.Equal(f.A0, uint32(40))              // rd holds the old value
	is.Equal(mem.Load32(0x800), uint32(42)) // memory updated
	is.Equal(f.PC, uint32(0x104))           // resumed past the instruction

	// Every other register survives the double frame translation.
	want.A0 = f.A0
	want.PC = f.PC
	is.Equal(f, want)
}

func TestAmoVariants(t *testing.T) {
	tests := []struct {
		name   string
		funct5 uint32
		old    uint32
		val    uint32
		want   uint32
	}{
		{"swap", fnAmoSwap, 40, 7, 7},
		{"xor", fnAmoXor, 0b1100, 0b1010, 0b0110},
		{"and", fnAmoAnd, 0b1100, 0b1010, 0b1000},
		{"or", fnAmoOr, 0b1100, 0b1010, 0b1110},
		{"min", fnAmoMin, 0xffffffff, 1, 0xffffffff}, // -1 < 1 signed
		{"max", fnAmoMax, 0xffffffff, 1, 1},
		{"minu", fnAmoMinu, 0xffffffff, 1, 1},
		{"maxu", fnAmoMaxu, 0xffffffff, 1, 0xffffffff},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)

			mem := NewRAM(0, 4096)
			mem.LoadProgram(0x100, []uint32{amo(tc.funct5, 10, 12, 11)})
			c, _ := openSim(t, NewConfig().Memory(mem))

			f := excFrame(0x100)
			f.A1 = tc.val
			f.A2 = 0x800
			mem.Store32(0x800, tc.old)

			c.HandleTrap(&f)

			is.Equal(f.A0, tc.old)
			is.Equal(mem.Load32(0x800), tc.want)
			is.Equal(f.PC, uint32(0x104))
		})
	}
}

func TestLrSc(t *testing.T) {
	is := is.New(t)

	mem := NewRAM(0, 4096)
	mem.LoadProgram(0x100, []uint32{
		amo(fnLr, 10, 12, 0),  // lr.w a0, (a2)
		amo(fnSc, 10, 12, 11), // sc.w a0, a1, (a2)
		amo(fnSc, 10, 12, 11), // sc.w again, reservation gone
	})
	c, _ := openSim(t, NewConfig().Memory(mem))

	f := excFrame(0x100)
	f.A1 = 55
	f.A2 = 0x800
	mem.Store32(0x800, 40)

	c.HandleTrap(&f)
	is.Equal(f.A0, uint32(40)) // lr loads the word

	f.Mcause = 7
	c.HandleTrap(&f)
	is.Equal(f.A0, uint32(0))               // sc succeeds
	is.Equal(mem.Load32(0x800), uint32(55)) // and stores

	f.Mcause = 7
	c.HandleTrap(&f)
	is.Equal(f.A0, uint32(1))               // no reservation: sc fails
	is.Equal(mem.Load32(0x800), uint32(55)) // and does not store
}

func TestAmoToX0Discarded(t *testing.T) {
	is := is.New(t)

	mem := NewRAM(0, 4096)
	// amoswap.w x0, a1, (a2): store a1, discard the old value.
	mem.LoadProgram(0x100, []uint32{amo(fnAmoSwap, 0, 12, 11)})
	c, _ := openSim(t, NewConfig().Memory(mem))

	f := excFrame(0x100)
	f.A1 = 9
	f.A2 = 0x800
	mem.Store32(0x800, 40)
	want := f

	c.HandleTrap(&f)

	is.Equal(mem.Load32(0x800), uint32(9))
	want.PC = 0x104
	is.Equal(f, want) // no register changed besides PC
}

func TestUnsupportedWidthForwarded(t *testing.T) {
	is := is.New(t)

	mem := NewRAM(0, 4096)
	// amoadd.d does not exist on this core (funct3=3).
	insn := amo(fnAmoAdd, 10, 12, 11) &^ (uint32(0x7) << 12)
	insn |= 3 << 12
	mem.LoadProgram(0x100, []uint32{insn})

	hit := 0
	cfg := NewConfig().Memory(mem).ExceptionHandler(func(*TrapFrame) { hit++ })
	c, _ := openSim(t, cfg)

	f := excFrame(0x100)
	want := f
	c.HandleTrap(&f)

	is.Equal(hit, 1)  // forwarded to the exception handler
	is.Equal(f, want) // untouched
}
