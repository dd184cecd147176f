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

import "errors"

// ErrInvalidPriority is returned by Enable when priority 0 is requested
// for an active routing.
var ErrInvalidPriority = errors.New("invalid interrupt priority")

// InitVectoring reserves lines 1..15 as priority buckets: line N is
// level triggered, carries priority N and is enabled. Must run before
// any source is mapped and before interrupts are enabled globally; Open
// takes care of this when vectoring is configured.
func (c *Controller) InitVectoring() {
	for i := 1; i <= nVectored; i++ {
		c.regs.SetKind(Line(i), Level)
		c.regs.SetPriority(Line(i), Priority(i))
		c.regs.EnableLine(Line(i))
	}
}

// Enable activates a peripheral source at the given priority. Under
// vectoring, priorities double as line identifiers: the source is mapped
// to the line numerically equal to the priority, and that line is
// enabled. This is the only supported way to activate a source when
// vectoring is in effect.
func (c *Controller) Enable(s Source, p Priority) error {
	if p == PriorityNone {
		return ErrInvalidPriority
	}
	l := Line(p)
	c.regs.MapSource(s, l)
	c.regs.EnableLine(l)
	return nil
}

// configuredInterrupts buckets every pending source in status by the
// priority of the line it is currently mapped to. Bucket 0 collects
// unrouted sources. Membership is re-derived from the live registers on
// every dispatch; mappings can change between traps, so nothing here is
// cached.
func (c *Controller) configuredInterrupts(status Status) [nPriorities + 1]Status {
	var prios [nPriorities + 1]Status
	for !status.empty() {
		n := status.firstSet()
		status.clear(n)
		l := c.regs.MappedLine(Source(n))
		p := c.regs.LinePriority(l)
		if p >= 0 && p <= nPriorities {
			prios[p].set(n)
		}
	}
	return prios
}

// handleLine services one firing of a vectored CPU line: snapshot the
// pending status, clear the line, then invoke the handler of every
// pending source mapped to it, in ascending source order.
func (c *Controller) handleLine(l Line, f *TrapFrame) {
	status := c.regs.Status()

	// This has no effect on level lines, but the line may be an edge
	// one so clear it anyway.
	c.regs.ClearLine(l)

	configured := c.configuredInterrupts(status)
	mask := status.and(configured[l])
	for !mask.empty() {
		n := mask.firstSet()
		mask.clear(n)
		// The source can deassert between the status snapshot and the
		// mapping read; skip bits that no longer name a source.
		if !sourceValid(n) {
			continue
		}
		c.handleSource(Source(n), f)
	}
}

// handleSource resolves the source's handler slot. A slot never
// installed resolves to the source fallback, which distinguishes "no
// handler" from an installed handler.
func (c *Controller) handleSource(s Source, f *TrapFrame) {
	h := c.handlers[s]
	if h == nil {
		if c.srcFallback != nil {
			c.srcFallback(s)
		}
		return
	}
	h(f)
}
