// Package telemetry exposes named read-only fields that mirror the values of
// the control pipeline.
//
// A Group is a fixed set of Vars registered once at start-up. Each Var is a
// single atomic slot: the pipeline overwrites it every tick without waiting
// and any reader may sample it at its own rate. Sampling a group is not an
// atomic snapshot; fields may come from adjacent ticks.
//
// Groups are exported to Prometheus through Collector.
package telemetry
