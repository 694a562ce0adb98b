// Package reactive is the fine-grained update engine behind cells.
//
// A [Signal] holds a value and the ordered set of hooks that read it during
// their most recent render. Hooks live in a [Store], an arena addressed by
// generational [HookKey]s, so signals never hold strong references to the
// work that depends on them.
//
// All mutation happens inside a tick ([Engine.Run]). Writes made outside a
// hook move the signal's subscribers into the engine's dirty queue; at the
// end of the tick each queued hook that still exists is updated once, in the
// order the hooks were created.
//
// Known limitations, kept on purpose:
//
//   - Hooks run in creation order, not topological order. In a diamond
//     dependency a hook may be recomputed from a partly stale upstream value
//     within one tick.
//   - Signals written synchronously while the queue drains are propagated on
//     the next tick, not the current one.
//   - A signal read only inside a hidden branch keeps its old dependents until
//     it is written or the branch renders again.
package reactive
