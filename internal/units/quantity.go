package units

import (
	"fmt"
	"math"
)

const (
	zeroCelsius  = 273.15
	secondsPerHr = 3600.0
	joulesPerKWh = 3.6e6
)

// Power in watts.
type Power float64

// Energy in joules.
type Energy float64

// Temperature is an absolute temperature in kelvin.
type Temperature float64

// TemperatureDelta is a temperature difference in kelvin.
type TemperatureDelta float64

// Length in meters.
type Length float64

// Time is a duration in seconds.
type Time float64

// HeatCapacity in joules per kelvin.
type HeatCapacity float64

// ThermalConductance in watts per kelvin.
type ThermalConductance float64

// Voltage in volts.
type Voltage float64

// Current in amperes.
type Current float64

// Resistance in ohms.
type Resistance float64

func Watts(v float64) Power                       { return Power(v) }
func Kilowatts(v float64) Power                   { return Power(v * 1e3) }
func Joules(v float64) Energy                     { return Energy(v) }
func KilowattHours(v float64) Energy              { return Energy(v * joulesPerKWh) }
func Kelvin(v float64) Temperature                { return Temperature(v) }
func Celsius(v float64) Temperature               { return Temperature(v + zeroCelsius) }
func Meters(v float64) Length                     { return Length(v) }
func Kilometers(v float64) Length                 { return Length(v * 1e3) }
func Seconds(v float64) Time                      { return Time(v) }
func Hours(v float64) Time                        { return Time(v * secondsPerHr) }
func JoulesPerKelvin(v float64) HeatCapacity      { return HeatCapacity(v) }
func WattsPerKelvin(v float64) ThermalConductance { return ThermalConductance(v) }
func Volts(v float64) Voltage                     { return Voltage(v) }
func Amperes(v float64) Current                   { return Current(v) }
func Ohms(v float64) Resistance                   { return Resistance(v) }

func (p Power) Watts() float64             { return float64(p) }
func (p Power) Kilowatts() float64         { return float64(p) / 1e3 }
func (e Energy) Joules() float64           { return float64(e) }
func (e Energy) KilowattHours() float64    { return float64(e) / joulesPerKWh }
func (t Temperature) Kelvin() float64      { return float64(t) }
func (t Temperature) Celsius() float64     { return float64(t) - zeroCelsius }
func (d TemperatureDelta) Kelvin() float64 { return float64(d) }
func (l Length) Meters() float64           { return float64(l) }
func (t Time) Seconds() float64            { return float64(t) }
func (t Time) Hours() float64              { return float64(t) / secondsPerHr }

// Times integrates a constant power over a duration.
func (p Power) Times(dt Time) Energy { return Energy(float64(p) * float64(dt)) }

// Per is the average power delivering e over dt.
func (e Energy) Per(dt Time) Power { return Power(float64(e) / float64(dt)) }

// Over gives the current drawn at voltage v.
func (p Power) Over(v Voltage) Current { return Current(float64(p) / float64(v)) }

// Scale multiplies p by a dimensionless factor such as an efficiency.
func (p Power) Scale(f float64) Power { return Power(float64(p) * f) }

func (p Power) Abs() Power { return Power(math.Abs(float64(p))) }

// Sub returns t - o as a difference.
func (t Temperature) Sub(o Temperature) TemperatureDelta { return TemperatureDelta(float64(t) - float64(o)) }

func (t Temperature) Add(d TemperatureDelta) Temperature { return Temperature(float64(t) + float64(d)) }

// Times is the heat flow through g across d.
func (g ThermalConductance) Times(d TemperatureDelta) Power { return Power(float64(g) * float64(d)) }

// Absorb is the temperature rise when c takes up e.
func (c HeatCapacity) Absorb(e Energy) TemperatureDelta { return TemperatureDelta(float64(e) / float64(c)) }

// Dissipate is the Joule heating of i flowing through r.
func (r Resistance) Dissipate(i Current) Power { return Power(float64(i) * float64(i) * float64(r)) }

func (p Power) String() string              { return fmt.Sprintf("%g W", float64(p)) }
func (e Energy) String() string             { return fmt.Sprintf("%g J", float64(e)) }
func (t Temperature) String() string        { return fmt.Sprintf("%g K", float64(t)) }
func (d TemperatureDelta) String() string   { return fmt.Sprintf("%g K", float64(d)) }
func (l Length) String() string             { return fmt.Sprintf("%g m", float64(l)) }
func (t Time) String() string               { return fmt.Sprintf("%g s", float64(t)) }
func (c HeatCapacity) String() string       { return fmt.Sprintf("%g J/K", float64(c)) }
func (g ThermalConductance) String() string { return fmt.Sprintf("%g W/K", float64(g)) }
func (v Voltage) String() string            { return fmt.Sprintf("%g V", float64(v)) }
func (i Current) String() string            { return fmt.Sprintf("%g A", float64(i)) }
func (r Resistance) String() string         { return fmt.Sprintf("%g Ω", float64(r)) }
