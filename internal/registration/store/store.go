// Package store provides the record store backends for registrants. Every
// backend enforces uniqueness on email and admission number at insert time,
// so the service's duplicate pre-check has no time-of-check/time-of-use gap:
// a losing concurrent insert surfaces as sentinel.ErrConflict.
package store
