// Package calibration plans and renders first-layer calibration prints.
// It contains:
//
//   - Config: every tunable of the calibration grid, with defaults for a
//     common 250 mm printer
//   - Layout: the planned grid geometry, one Cell per square
//   - Generate: turns a Config into a complete, ready-to-print G-code
//     program
//
// Planning is deterministic: the same Config always yields the same
// layout and the same program, so generated files can be diffed.
package calibration
