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

const (
	// mcause interrupt flag and exception code field.
	causeInterrupt = 1 << 31
	causeCodeMask  = 0x3ff

	// Major opcode of the atomic memory operation instructions.
	amoOpcode = 0x2f
)

// HandleTrap is the single entry point the trap vector calls for every
// trap. It classifies the trap from the frame's cause register and
// forwards it to interrupt dispatch or to the exception path. Every
// branch terminates in a resume or a forwarded handler; an unexpected
// cause code reaches the line fallback, never a crash here.
func HandleTrap(f *TrapFrame) {
	if ctrl != nil {
		ctrl.HandleTrap(f)
	}
}

// HandleTrap classifies and dispatches one trap.
func (c *Controller) HandleTrap(f *TrapFrame) {
	if f.Mcause&causeInterrupt != 0 {
		code := int(f.Mcause & causeCodeMask)
		if code >= 1 && code <= nLines {
			c.handleInterrupt(Line(code), f)
		} else if c.lineFallback != nil {
			c.lineFallback(f)
		}
		return
	}
	c.handleException(f)
}

// handleInterrupt routes a firing CPU line: vectored lines fan out to
// the per-source handlers, direct lines go to their own handler slot.
func (c *Controller) handleInterrupt(l Line, f *TrapFrame) {
	if c.vectored && l <= nVectored {
		c.handleLine(l, f)
		return
	}
	if h := c.lineHandlers[l]; h != nil {
		h(f)
		return
	}
	if c.lineFallback != nil {
		c.lineFallback(f)
	}
}

// handleException services a synchronous fault. Instructions matching
// the atomic opcode are run through the emulation routine via the
// emulation frame layout; everything else is forwarded untouched to the
// exception handler.
func (c *Controller) handleException(f *TrapFrame) {
	if c.mem != nil {
		insn := c.mem.Load32(f.PC)
		if insn&0x7f == amoOpcode {
			ef := toEmulationFrame(f)
			if c.atomics(&ef, c.mem) {
				ef.copyBack(f)
				return
			}
		}
	}
	if c.excHandler != nil {
		c.excHandler(f)
	}
}
