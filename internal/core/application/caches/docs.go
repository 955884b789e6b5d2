// Package caches holds the application-level read caches that sit between the
// use case handlers and the tabular persistence backend. The backend is slow
// and rate limited, so hot reads (vehicle positions during dispatch, the stock
// catalog during interpretation) go through explicit cache objects with clear
// load, get and invalidate semantics instead of ad hoc per-call reads.
package caches
