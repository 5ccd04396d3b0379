// Package state holds the navigation cursor shared between UI commands.
//
// # Overview
//
// The cursor is two integers: the id currently displayed and the highest id
// known to exist. Bubble Tea runs commands on their own goroutines, so two
// navigation actions may be in flight at once. Store serializes every read
// and write behind a sync.RWMutex and hands out request sequence numbers so
// that only the most recent request may move the cursor.
//
// # Lifecycle
//
//  1. Seed(latest) once the latest comic is known: Current = Max = latest
//  2. Begin(), BeginMove(id) or Step(delta) before each fetch reserves a
//     sequence number; the moving forms also record the pending target
//  3. Commit(seq, id) after a successful fetch moves Current, but only when
//     seq is still the latest and 1 <= id <= Max
//  4. FailRequest(seq, err) after a failed fetch records the error and drops
//     the pending target; the cursor is kept
//  5. RaiseMax(latest) after a refresh; Max never decreases
//
// Step counts from the pending target rather than Current, so two presses of
// next before the first response arrives advance two comics.
//
// # Invariants
//
//   - 1 <= Current <= Max once seeded
//   - Max is monotonic
//   - a failed or stale request never changes Current
//
// Snapshot returns a value copy; callers may keep it without holding a lock.
// Its failure count covers every request against the API and drives the
// refresh poller's backoff.
package state
