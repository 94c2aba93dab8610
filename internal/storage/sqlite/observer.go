// ABOUTME: Instrumentation hook for store operations
// ABOUTME: No-op by default so stores never branch on observer presence
package sqlite

import "time"

// Observer receives one event per completed store operation. err is nil
// on success. Implementations must be safe for concurrent use.
type Observer interface {
	Observe(op string, start time.Time, err error)
}

// NopObserver discards all events. It is the default observer.
type NopObserver struct{}

// Observe implements Observer.
func (NopObserver) Observe(string, time.Time, error) {}

// observe is used with defer and a named error return:
//
//	defer observe(s.obs, "activity.add", time.Now(), &err)
func observe(o Observer, op string, start time.Time, errp *error) {
	o.Observe(op, start, *errp)
}
