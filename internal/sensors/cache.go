// Package sensors caches the latest range and optical-flow samples delivered
// by asynchronous drivers.
//
// Writers and the once-per-tick reader never wait on each other. Each field is
// an independent atomic slot, so a Snapshot taken while a driver is writing may
// combine the new value of one field with the old value of another. That
// staleness is bounded to one delivery and is accepted: delivery is slower
// than the control tick.
package sensors

import (
	"math"
	"sync/atomic"

	"github.com/san-kum/flowctl/internal/flight"
)

// Cache holds latest-value sensor data. The zero value is ready to use.
type Cache struct {
	rangeDistance atomic.Uint32 // float32 bits
	rangeCount    atomic.Uint32
	flowDX        atomic.Uint32
	flowDY        atomic.Uint32
	flowCount     atomic.Uint32
}

func New() *Cache {
	return &Cache{}
}

// RecordRange stores a range measurement and counts its arrival.
func (c *Cache) RecordRange(distance float32) {
	c.rangeDistance.Store(math.Float32bits(distance))
	c.rangeCount.Add(1)
}

// RecordFlow stores an optical-flow measurement and counts its arrival.
func (c *Cache) RecordFlow(dx, dy float32) {
	c.flowDX.Store(math.Float32bits(dx))
	c.flowDY.Store(math.Float32bits(dy))
	c.flowCount.Add(1)
}

// Reset zeroes every slot in place, so drivers holding c keep feeding the
// same cache.
func (c *Cache) Reset() {
	c.rangeDistance.Store(0)
	c.rangeCount.Store(0)
	c.flowDX.Store(0)
	c.flowDY.Store(0)
	c.flowCount.Store(0)
}

// Snapshot returns the cached values. Counters wrap at 65536.
func (c *Cache) Snapshot() flight.SensorSample {
	return flight.SensorSample{
		RangeDistance: math.Float32frombits(c.rangeDistance.Load()),
		RangeCount:    uint16(c.rangeCount.Load()),
		FlowDX:        math.Float32frombits(c.flowDX.Load()),
		FlowDY:        math.Float32frombits(c.flowDY.Load()),
		FlowCount:     uint16(c.flowCount.Load()),
	}
}
