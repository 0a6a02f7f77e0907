package telemetry

import (
	"fmt"
)

// API is an abstraction over logging/metrics, scrapers report every failed
// lookup stage through it so tests can assert on the diagnostics.
type API interface {
	// ReportBroken reports a component that failed to produce its result.
	//
	// The `id` names the component and operation, not the specific line that broke.
	// ex. a failed borrow fee lookup in the chartexchange scraper is `client.borrow-fee`,
	// the stage that failed (phrase, sibling) goes into the wrapped error.
	//
	// Formatting rules:
	// 1) all lowercase
	// 2) use underscores for large components
	// 3) use dashes for methods part of a larger component
	//
	// Use ScopedAPI to prefix the package, ids then only need `<struct>.<method>`.
	ReportBroken(id string, params ...any)

	// ReportWarning reports a partial failure, the component still produced a result.
	//
	// For what value to provide as `id` refer to ReportBroken.
	ReportWarning(id string, params ...any)

	// ReportDebug reports some debug information that is hidden unless verbose.
	ReportDebug(msg string, params ...any)

	// ReportCount reports the current count of something at the current time.
	//
	// For what value to provide as `id` refer to ReportBroken.
	ReportCount(id string, count int64)
}

// ScopedAPI attaches a namespace to every id reported through it, like a
// "sub" logger.
type ScopedAPI struct {
	namespace string
	inner     API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(fmt.Sprintf("%s: %s", s.namespace, msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(fmt.Sprintf("%s: %s", s.namespace, id), count)
}
