// Package queue provides a small background task queue whose task envelopes
// carry tenant identity across the request/worker boundary.
//
// The Enqueuer snapshots the tenant entry from the calling context into the
// task; the Worker applies that snapshot into a fresh scope before the
// handler runs, so handlers read the tenant exactly as request handlers do:
//
//	enq, _ := queue.NewEnqueuer(storage)
//	// inside a request handler:
//	enq.Enqueue(r.Context(), "email.welcome", WelcomePayload{UserID: id})
//
//	w, _ := queue.NewWorker(storage)
//	w.RegisterHandlers(queue.NewTaskHandler("email.welcome",
//		func(ctx context.Context, p WelcomePayload) error {
//			id, _ := tenant.IdentifierFromContext(ctx) // enqueuer's tenant
//			...
//		}))
//
// Storage is pluggable; MemoryStorage serves tests and local development.
package queue
