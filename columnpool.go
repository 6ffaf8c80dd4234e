/*
Copyright © 2021 the Aeromix authors.
This file is part of Aeromix.

Aeromix is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Aeromix is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Aeromix.  If not, see <http://www.gnu.org/licenses/>.
*/

package aeromix

// ColumnPool is a simple allocation pool for standalone per-level buffers,
// used by test harnesses that need many columns with the same number of
// vertical levels. Buffers handed out are exclusive and never aliased;
// the pool doubles its capacity when exhausted. A ColumnPool is an
// explicitly owned resource: create one where it is needed and let it go
// out of scope when done. It is intended for single-threaded setup use and
// is not safe for concurrent access.
type ColumnPool struct {
	numLevels int
	columns   [][]float64
	next      int
}

// NewColumnPool creates a pool of columns with the given number of vertical
// levels each, pre-allocating initialColumns of them.
func NewColumnPool(numLevels, initialColumns int) *ColumnPool {
	if initialColumns < 1 {
		initialColumns = 1
	}
	p := &ColumnPool{
		numLevels: numLevels,
		columns:   make([][]float64, initialColumns),
	}
	for i := range p.columns {
		p.columns[i] = make([]float64, numLevels)
	}
	return p
}

// NumLevels returns the number of vertical levels in each column the pool
// hands out.
func (p *ColumnPool) NumLevels() int { return p.numLevels }

// ColumnView returns a fresh unused column from the pool, growing the pool
// if every column is in use.
func (p *ColumnPool) ColumnView() []float64 {
	if p.next == len(p.columns) {
		grown := make([][]float64, 2*len(p.columns))
		copy(grown, p.columns)
		for i := len(p.columns); i < len(grown); i++ {
			grown[i] = make([]float64, p.numLevels)
		}
		p.columns = grown
	}
	c := p.columns[p.next]
	p.next++
	return c
}

// Reset marks every column as unused again. Buffers previously handed out
// must no longer be touched by their holders after a Reset.
func (p *ColumnPool) Reset() { p.next = 0 }
