// Package tracked provides write-before-read state for discrete-time
// simulation loops.
//
// A component declares one [Cell] per state variable it must produce each
// step and follows a fixed cycle:
//
//   - reset every cell ([Cell.Reset] or [Group.ResetAll])
//   - compute, writing each cell with [Cell.Update] or [Cell.MapMut]
//   - verify with [Cell.AssertWritten] or [Group.AssertAll]
//   - read values with [Cell.Get] or [Map]
//
// Every write records a [Provenance] so a debug dump can show where a value
// came from.
//
// # Example
//
//	pwr := tracked.NewStrict[units.Power]("power")
//	dt := tracked.NewStrict[units.Time]("dt")
//	energy := tracked.NewStrict[units.Energy]("energy")
//
//	pwr.Update(units.Watts(1))
//	dt.Update(units.Seconds(1))
//	e, _ := tracked.Map(pwr, func(p units.Power) units.Energy {
//	    d, _ := dt.Get()
//	    return p.Times(d)
//	})
//	energy.Update(e)
//	energy.AssertWritten()
//
// # Failures
//
// A missing write and, under [Strict], a double write are bugs in the
// calling model. They panic with [*MissingWriteError] and
// [*DoubleWriteError] respectively and are never recovered inside this
// module.
//
// # Thread Safety
//
// Cells are NOT thread-safe. A cell belongs to the component that declares
// it and is only touched from that component's step.
package tracked
