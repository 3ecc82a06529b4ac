// Package async runs functions in background goroutines with tenant scope
// hand-off.
//
// Go spawns the function with a fresh scope seeded from snapshots of the
// caller's entries, so the computation observes the same tenant identity as
// the request that started it while remaining an isolated unit of work:
//
//	future := async.Go(r.Context(), userID, buildReport)
//	// ... handle the request ...
//	report, err := future.Await()
package async
