// Package simulation provides a test harness for multi-day immune
// dynamics experiments: a scenario runner over a single host
// repertoire, per-day state capture, and assertion helpers shared by
// the dynamics test suite.
//
// The package contains no production code; the runner exists so tests
// can describe exposure timelines declaratively and assert on whole
// trajectories instead of single update calls.
package simulation
