// Package tracker hosts the storage-status tracker: the bookkeeping core
// that mirrors, per executor, the current set of retained blocks and the
// all-time peak memory usage derived from them. All handlers and read
// accessors execute under a single per-instance critical section so that the
// status map and the peak table always move as one atomic unit.
package tracker
