// Copyright 2025 CrossRelay Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics defines minimal metrics primitives. Instrumented code
// depends on these interfaces instead of a concrete metrics backend; nil
// metrics are valid and are no-ops, so metrics are always optional.
package metrics

// Counter describes a metric that accumulates values monotonically.
type Counter interface {
	Add(delta float64)
}

// Gauge describes a metric that takes arbitrary values.
type Gauge interface {
	Add(delta float64)
	Set(value float64)
}

// CounterInc increments the counter by one, if the counter is not nil.
func CounterInc(c Counter) {
	CounterAdd(c, 1)
}

// CounterAdd increments the counter by the given delta, if the counter is
// not nil.
func CounterAdd(c Counter, delta float64) {
	if c != nil {
		c.Add(delta)
	}
}

// GaugeSet sets the gauge to the given value, if the gauge is not nil.
func GaugeSet(g Gauge, value float64) {
	if g != nil {
		g.Set(value)
	}
}
