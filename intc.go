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
	"fmt"
	"io"
)

// Controller is the handle for exclusive access to the interrupt matrix.
// It owns the register window, the fixed handler table and the trap
// entry points. Configuration operations that touch a line's registers
// must not run concurrently with an in-flight trap on that line; perform
// them before interrupts are enabled globally, or with the line's enable
// bit cleared.
type Controller struct {
	regs Registers
	mem  Memory

	handlers     [nSources]Handler
	lineHandlers [nLines + 1]Handler
	srcFallback  func(Source)
	lineFallback Handler
	excHandler   Handler
	atomics      AtomicEmulator
	vectored     bool

	// LR/SC reservation state for the atomic emulation routine.
	reserved    bool
	reservation uint32
}

// Single instance of the controller.
var ctrl *Controller

// Open initialises the interrupt controller using the configuration
// provided. When vectoring is enabled (the default), lines 1..15 are set
// up as priority buckets before any source can be mapped.
func Open(cfg *Config) (*Controller, error) {
	if ctrl != nil {
		return nil, fmt.Errorf("controller already open; must close it first")
	}
	c := new(Controller)
	c.mem = cfg.mem
	c.srcFallback = cfg.srcFallback
	c.lineFallback = cfg.lineFallback
	c.excHandler = cfg.excHandler
	c.atomics = cfg.atomics
	c.vectored = cfg.vectored
	if c.atomics == nil {
		c.atomics = c.emulateAtomic
	}
	for s, h := range cfg.handlers {
		if !sourceValid(int(s)) {
			return nil, fmt.Errorf("handler for unknown source %d", s)
		}
		c.handlers[s] = h
	}
	for l, h := range cfg.lineHandlers {
		if l < 1 || l > nLines {
			return nil, fmt.Errorf("handler for invalid line %d", l)
		}
		if cfg.vectored && l <= nVectored {
			return nil, fmt.Errorf("line %d is reserved for vectored dispatch", l)
		}
		c.lineHandlers[l] = h
	}
	c.regs = cfg.regs
	if c.regs == nil {
		w, err := openWindow()
		if err != nil {
			return nil, err
		}
		c.regs = w
	}
	if c.vectored {
		c.InitVectoring()
	}
	ctrl = c
	return c, nil
}

// Close releases the controller and its register window.
func (c *Controller) Close() {
	if cl, ok := c.regs.(io.Closer); ok {
		cl.Close()
	}
	ctrl = nil
}

// Map routes the peripheral source to a CPU line, overwriting any
// previous routing. With vectoring enabled, use Enable instead to keep
// the priority bucket convention intact.
func (c *Controller) Map(s Source, l Line) {
	c.regs.MapSource(s, l)
}

// Unmap removes the source from any line's pending computation.
// Unmapping an already unmapped source is harmless.
func (c *Controller) Unmap(s Source) {
	c.regs.UnmapSource(s)
}

// EnableLine sets the line's enable bit.
func (c *Controller) EnableLine(l Line) {
	c.regs.EnableLine(l)
}

// SetKind sets the line's signalling type.
func (c *Controller) SetKind(l Line, k Kind) {
	c.regs.SetKind(l, k)
}

// SetPriority sets the line's priority level.
func (c *Controller) SetPriority(l Line, p Priority) {
	c.regs.SetPriority(l, p)
}

// ClearLine clears the line's pending bit.
func (c *Controller) ClearLine(l Line) {
	c.regs.ClearLine(l)
}

// Status returns the aggregate pending state of all peripheral sources.
func (c *Controller) Status() Status {
	return c.regs.Status()
}
