package reactive

// Hook is a unit of reactive work bound to one location in the DOM.
//
// Update re-runs the hook's callback (normally through Engine.Track so the
// hook re-subscribes to whatever it reads) and applies the result. self is
// the hook's own key.
//
// Teardown is called once when the hook is removed. It releases whatever the
// hook keeps alive and returns the keys of its child hooks so the store can
// remove them too.
type Hook interface {
	Update(e *Engine, self HookKey) UpdateResult
	Teardown() []HookKey
}

type resultKind uint8

const (
	resultNothing resultKind = iota
	resultRunHook
	resultDropHooks
)

// UpdateResult tells the engine what to do after a hook update.
type UpdateResult struct {
	kind resultKind
	run  HookKey
	drop []HookKey
}

// Nothing is the result of an update with no follow-up work.
func Nothing() UpdateResult {
	return UpdateResult{}
}

// RunHook schedules key to run next in the current tick.
func RunHook(key HookKey) UpdateResult {
	return UpdateResult{kind: resultRunHook, run: key}
}

// DropHooks removes keys (and everything they own) from the store.
func DropHooks(keys []HookKey) UpdateResult {
	if len(keys) == 0 {
		return Nothing()
	}
	return UpdateResult{kind: resultDropHooks, drop: keys}
}

// IsNothing reports whether the result carries no follow-up work.
func (r UpdateResult) IsNothing() bool {
	return r.kind == resultNothing
}
