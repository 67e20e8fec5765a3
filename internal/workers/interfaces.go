// Package workers runs the client's background jobs for the lifetime of a
// logged-in session.
//
// A [Worker] is started with the session context and stopped on logout or
// shutdown. [Workers] groups several of them so the application can start
// and stop all background activity with one call.
package workers

import "context"

// Worker is a background job with an explicit lifecycle.
//
// Start must not block: implementations spawn their own goroutine and return.
// Calling Start again restarts the job. Stop blocks until the goroutine has
// exited and is safe to call on a worker that was never started.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
