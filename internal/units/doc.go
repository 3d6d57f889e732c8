// Package units defines physically typed quantities for component models.
//
// Every quantity is a distinct float64 type stored in SI base units, so
// adding a [Power] to an [Energy] does not compile. Cross-unit arithmetic
// is only available where it is physically meaningful:
//
//	e := units.Kilowatts(3).Times(units.Hours(2)) // Energy
//	p := e.Per(units.Hours(1))                    // Power
//
// This is not a conversion library; constructors and accessors cover the
// handful of units the models need.
package units
