// Package stormon provides a storage-status monitor for cluster execution
// engines that cache data blocks in worker (executor) memory.
//
// The monitor mirrors state changes reported by the engine - executor
// registration, per-task block updates and dataset unpersists - and keeps,
// per executor, the current set of retained blocks together with the highest
// memory usage ever observed. It is a passive observer: it never allocates,
// evicts or serves data, and it never raises an error back to the engine.
//
// End-users typically interact with the monitor via the high-level Service
// facade exposed by the root package:
//
//	srv := stormon.New()
//	srv.Notify(notification.ExecutorAdded{ExecutorID: "e1", MaxMemory: 1 << 30})
//	peak := srv.Tracker().PeakMemoryUsed("e1")
//
// Engines that already run an event bus can instead publish notifications
// through srv.Publisher() and let the monitor consume them asynchronously.
//
// For more details see the individual sub-packages, in particular
// service/tracker which hosts the core bookkeeping logic.
package stormon
