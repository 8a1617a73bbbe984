package persist

import "time"

// Shared no-op and inline dispatchers. Both are stateless and safe to share
// across unrelated managers.
var (
	directDispatcher  Dispatcher = DispatcherFunc(func(task func()) { task() })
	discardDispatcher Dispatcher = DispatcherFunc(func(task func()) {})
)

// Direct returns a dispatcher that runs tasks inline on the triggering
// goroutine. With a direct dispatcher the manager reconnects immediately, so
// sources must tolerate reentrant Open calls.
func Direct() Dispatcher { return directDispatcher }

// Discard returns a dispatcher that silently drops every task, which disables
// auto-reconnect entirely.
func Discard() Dispatcher { return discardDispatcher }

// Delayed returns a dispatcher that runs each task after the given delay.
// Tasks are not deduplicated: triggers arriving before an earlier delayed
// task fires leave multiple tasks outstanding.
func Delayed(delay time.Duration) Dispatcher {
	return DispatcherFunc(func(task func()) {
		time.AfterFunc(delay, task)
	})
}
