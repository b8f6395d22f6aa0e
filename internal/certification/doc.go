// Package certification scores a building's predicted emissions against the
// LEED v4.1 Energy & Atmosphere performance ladder.
//
// The package is pure: every function works over immutable lookup tables and
// caller-supplied values, so an Assessor is safe for concurrent use.
//
// Pipeline:
//
//	EstimateBaseline -> TierTable.Evaluate -> Classify -> Generate -> ProjectROI
//
// Assessor.Assess composes the steps into one Assessment.
package certification
