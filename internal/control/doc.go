// Package control decides how much cooling power a battery pack gets.
//
// A [Cooler] maps the pack temperature at the start of a step to a cooling
// power in [0, max]:
//
//   - [Threshold]: full power above a limit, nothing below
//   - [PID]: proportional-integral-derivative around a target temperature
//
// # Usage
//
//	cooler, err := control.New("pid", units.Celsius(35), units.Kilowatts(2), control.DefaultGains())
//	battery.SetCooler(cooler)
package control
