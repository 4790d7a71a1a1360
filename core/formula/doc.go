// Package formula holds the closed-form estimators behind each trade tool.
//
// Every evaluator takes inputs already normalized to canonical units and
// returns a result rounded by the precision policy. Evaluators are total:
// zero, negative or extreme inputs produce a number, never a panic. Domain
// validation (positive dimensions, sane angles) is the caller's concern.
package formula
