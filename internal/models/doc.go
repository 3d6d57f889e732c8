// Package models provides powertrain components built from tracked cells.
//
// Each model implements [sim.Component]: it declares its cells in a
// [tracked.Group] and writes every one of them during Update.
//
//   - [Motor]: mechanical demand to electrical power
//   - [Battery]: energy bookkeeping and a lumped thermal model
//
// Components are chained by passing an upstream accessor, for example
// NewBattery(params, motor.ElectricalPower, integ). A battery whose upstream
// did not produce a value leaves its own power cell empty, which its Check
// reports by name.
package models
