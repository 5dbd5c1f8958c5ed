// Package goroutine launches background tasks with panic recovery.
package goroutine

import (
	"runtime/debug"

	"github.com/voidlabs/void/internal/shared/logger"
)

// SafeGo runs fn on its own goroutine. A panic is logged with the task name
// and stack instead of taking the process down; fire-and-forget work like
// the reply notification must never crash the server.
func SafeGo(log logger.Interface, task string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("background task panicked",
					"task", task,
					"panic", r,
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}
