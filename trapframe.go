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

// TrapFrame is the register state captured at trap entry, in the exact
// order the trap entry stub pushes it. A handler may mutate any field;
// the resumed context observes the mutated values, so a handler can for
// example advance PC to skip the faulting instruction. The frame lives
// on the interrupted context's stack for the duration of one trap and
// never persists across traps. The zero value is a fully zeroed frame.
type TrapFrame struct {
	RA  uint32
	T0  uint32
	T1  uint32
	T2  uint32
	T3  uint32
	T4  uint32
	T5  uint32
	T6  uint32
	A0  uint32
	A1  uint32
	A2  uint32
	A3  uint32
	A4  uint32
	A5  uint32
	A6  uint32
	A7  uint32
	S0  uint32
	S1  uint32
	S2  uint32
	S3  uint32
	S4  uint32
	S5  uint32
	S6  uint32
	S7  uint32
	S8  uint32
	S9  uint32
	S10 uint32
	S11 uint32
	GP  uint32
	TP  uint32
	SP  uint32
	PC  uint32

	Mstatus uint32
	Mcause  uint32
	Mtval   uint32
}

// Handler is a peripheral interrupt handler. The frame is exclusively
// owned by the handler for the duration of the call.
type Handler func(*TrapFrame)

// EmulationFrame is the register layout the atomic emulation routine
// operates on: x register index order, with an explicit always-zero x0
// slot and the frame pointer name for x8. Content-equivalent to
// TrapFrame but layout-incompatible; conversion is always field by
// field, never a memory reinterpretation.
type EmulationFrame struct {
	X0  uint32
	RA  uint32
	SP  uint32
	GP  uint32
	TP  uint32
	T0  uint32
	T1  uint32
	T2  uint32
	FP  uint32
	S1  uint32
	A0  uint32
	A1  uint32
	A2  uint32
	A3  uint32
	A4  uint32
	A5  uint32
	A6  uint32
	A7  uint32
	S2  uint32
	S3  uint32
	S4  uint32
	S5  uint32
	S6  uint32
	S7  uint32
	S8  uint32
	S9  uint32
	S10 uint32
	S11 uint32
	T3  uint32
	T4  uint32
	T5  uint32
	T6  uint32
	PC  uint32
}

// toEmulationFrame copies the trap frame into the emulation layout.
// The x0 slot stays zero.
func toEmulationFrame(f *TrapFrame) EmulationFrame {
	return EmulationFrame{
		X0: 0,
		RA: f.RA,
		SP: f.SP,
		GP: f.GP,
		TP: f.TP,
		T0: f.T0,
		T1: f.T1,
		T2: f.T2,
		FP: f.S0,
		S1: f.S1,
		A0: f.A0,
		A1: f.A1,
		A2: f.A2,
		A3: f.A3,
		A4: f.A4,
		A5: f.A5,
		A6: f.A6,
		A7: f.A7,
		S2: f.S2,
		S3: f.S3,
		S4: f.S4,
		S5: f.S5,
		S6: f.S6,
		S7: f.S7,
		S8: f.S8,
		S9: f.S9,
		S10: f.S10,
		S11: f.S11,
		T3: f.T3,
		T4: f.T4,
		T5: f.T5,
		T6: f.T6,
		PC: f.PC,
	}
}

// copyBack writes every field the emulation routine may have mutated
// (all general purpose registers and PC) back into the trap frame.
func (ef *EmulationFrame) copyBack(f *TrapFrame) {
	f.RA = ef.RA
	f.SP = ef.SP
	f.GP = ef.GP
	f.TP = ef.TP
	f.T0 = ef.T0
	f.T1 = ef.T1
	f.T2 = ef.T2
	f.S0 = ef.FP
	f.S1 = ef.S1
	f.A0 = ef.A0
	f.A1 = ef.A1
	f.A2 = ef.A2
	f.A3 = ef.A3
	f.A4 = ef.A4
	f.A5 = ef.A5
	f.A6 = ef.A6
	f.A7 = ef.A7
	f.S2 = ef.S2
	f.S3 = ef.S3
	f.S4 = ef.S4
	f.S5 = ef.S5
	f.S6 = ef.S6
	f.S7 = ef.S7
	f.S8 = ef.S8
	f.S9 = ef.S9
	f.S10 = ef.S10
	f.S11 = ef.S11
	f.T3 = ef.T3
	f.T4 = ef.T4
	f.T5 = ef.T5
	f.T6 = ef.T6
	f.PC = ef.PC
}

// x returns register xn from the frame.
func (ef *EmulationFrame) x(n uint32) uint32 {
	switch n {
	case 0:
		return 0
	case 1:
		return ef.RA
	case 2:
		return ef.SP
	case 3:
		return ef.GP
	case 4:
		return ef.TP
	case 5:
		return ef.T0
	case 6:
		return ef.T1
	case 7:
		return ef.T2
	case 8:
		return ef.FP
	case 9:
		return ef.S1
	case 10:
		return ef.A0
	case 11:
		return ef.A1
	case 12:
		return ef.A2
	case 13:
		return ef.A3
	case 14:
		return ef.A4
	case 15:
		return ef.A5
	case 16:
		return ef.A6
	case 17:
		return ef.A7
	case 18:
		return ef.S2
	case 19:
		return ef.S3
	case 20:
		return ef.S4
	case 21:
		return ef.S5
	case 22:
		return ef.S6
	case 23:
		return ef.S7
	case 24:
		return ef.S8
	case 25:
		return ef.S9
	case 26:
		return ef.S10
	case 27:
		return ef.S11
	case 28:
		return ef.T3
	case 29:
		return ef.T4
	case 30:
		return ef.T5
	default:
		return ef.T6
	}
}

// setX writes register xn. Writes to x0 are discarded.
func (ef *EmulationFrame) setX(n, v uint32) {
	switch n {
	case 0:
	case 1:
		ef.RA = v
	case 2:
		ef.SP = v
	case 3:
		ef.GP = v
	case 4:
		ef.TP = v
	case 5:
		ef.T0 = v
	case 6:
		ef.T1 = v
	case 7:
		ef.T2 = v
	case 8:
		ef.FP = v
	case 9:
		ef.S1 = v
	case 10:
		ef.A0 = v
	case 11:
		ef.A1 = v
	case 12:
		ef.A2 = v
	case 13:
		ef.A3 = v
	case 14:
		ef.A4 = v
	case 15:
		ef.A5 = v
	case 16:
		ef.A6 = v
	case 17:
		ef.A7 = v
	case 18:
		ef.S2 = v
	case 19:
		ef.S3 = v
	case 20:
		ef.S4 = v
	case 21:
		ef.S5 = v
	case 22:
		ef.S6 = v
	case 23:
		ef.S7 = v
	case 24:
		ef.S8 = v
	case 25:
		ef.S9 = v
	case 26:
		ef.S10 = v
	case 27:
		ef.S11 = v
	case 28:
		ef.T3 = v
	case 29:
		ef.T4 = v
	case 30:
		ef.T5 = v
	case 31:
		ef.T6 = v
	}
}
