package coordinator

// Package coordinator runs metadata fetches, downloads, and thumbnail fetches
// on background workers, one per task kind at a time. It owns all task
// records, translates resolver callbacks into progress updates, and delivers
// every state change through a single dispatch goroutine so observers never
// need their own locking. Cancellation is cooperative: a flag checked at each
// callback plus context cancellation handed to the resolver.
