// Package services contains stateless domain services coordinating logic
// that does not belong to a single aggregate: nearest-vehicle selection for
// dispatch and greedy route sequencing for multi-stop planning.
package services
