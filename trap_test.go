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

func TestDirectLineHandler(t *testing.T) {
	is := is.New(t)

	hit := 0
	cfg := NewConfig().LineHandler(20, func(*TrapFrame) { hit++ })
	c, _ := openSim(t, cfg)

	f := interruptFrame(20)
	c.HandleTrap(&f)
	is.Equal(hit, 1)
}

func TestUnhandledCauseFallsBack(t *testing.T) {
	is := is.New(t)

	fell := 0
	cfg := NewConfig().LineFallback(func(*TrapFrame) { fell++ })
	c, _ := openSim(t, cfg)

	// Interrupt code outside the supported line range.
	f := TrapFrame{Mcause: causeInterrupt | 40}
	c.HandleTrap(&f)
	is.Equal(fell, 1)

	// Direct line with no handler installed.
	f = interruptFrame(25)
	c.HandleTrap(&f)
	is.Equal(fell, 2)
}

func TestNonAtomicExceptionForwardedByIdentity(t *testing.T) {
	is := is.New(t)

	mem := NewRAM(0, 4096)
	mem.LoadProgram(0x80, []uint32{0x00000013}) // addi x0, x0, 0

	var seen *TrapFrame
	cfg := NewConfig().Memory(mem).ExceptionHandler(func(f *TrapFrame) { seen = f })
	c, _ := openSim(t, cfg)

	f := TrapFrame{PC: 0x80, A0: 11, S3: 22, Mcause: 2, Mtval: 0x80}
	want := f
	c.HandleTrap(&f)

	is.True(seen == &f) // the captured frame itself, no copy
	is.Equal(f, want)   // and unmodified
}

func TestExceptionWithoutMemoryForwarded(t *testing.T) {
	is := is.New(t)

	hit := 0
	cfg := NewConfig().ExceptionHandler(func(*TrapFrame) { hit++ })
	c, _ := openSim(t, cfg)

	f := TrapFrame{PC: 0x80, Mcause: 2}
	c.HandleTrap(&f)
	is.Equal(hit, 1)
}

func TestAtomicEmulatorOverride(t *testing.T) {
	is := is.New(t)

	mem := NewRAM(0, 4096)
	mem.LoadProgram(0x80, []uint32{amo(fnAmoSwap, 10, 11, 12)})

	hit := 0
	cfg := NewConfig().Memory(mem).AtomicEmulator(func(ef *EmulationFrame, m Memory) bool {
		hit++
		ef.PC += 4
		return true
	})
	c, _ := openSim(t, cfg)

	f := TrapFrame{PC: 0x80, Mcause: 7}
	c.HandleTrap(&f)
	is.Equal(hit, 1)
	is.Equal(f.PC, uint32(0x84))
}
