package errors

import (
	"sort"
	"sync"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

var (
	registryMu sync.RWMutex

	// registry maps error codes to their templates.
	registry = map[string]ErrorTemplate{
		// ============================================
		// Reactive engine bugs (R001-R049)
		// ============================================

		"R001": {
			Category: CategoryReactive,
			Message:  "Root state already borrowed",
			Detail:   "A tick tried to take exclusive access to component state while another tick held it. State is probably being held across a suspension point, or a deferred update was issued from inside an event handler.",
		},
		"R002": {
			Category: CategoryReactive,
			Message:  "Hook reserved but never installed",
			Detail:   "Propagation reached a hook key whose slot was reserved but never filled. A hook constructor returned early without calling Install.",
		},
		"R003": {
			Category: CategoryReactive,
			Message:  "Install on a key that is not reserved",
			Detail:   "Install was called with a key that was removed or never reserved.",
		},
		"R004": {
			Category: CategoryReactive,
			Message:  "Signal shared across engines",
			Detail:   "A signal that already feeds hooks of one mounted root was read by a hook of another root. The subscription was dropped.",
		},
		"R005": {
			Category: CategoryReactive,
			Message:  "Hook re-entered during its own update",
			Detail:   "A hook's update ran while the same hook was already updating.",
		},
		"R006": {
			Category: CategoryReactive,
			Message:  "Guarded value read outside its branch",
			Detail:   "An accessor returned by a guard was called after the guarded value stopped matching. It is only valid inside the subtree the guard rendered.",
		},

		// ============================================
		// DOM errors (R050-R069)
		// ============================================

		"R050": {
			Category: CategoryDOM,
			Message:  "Cannot replace a detached node",
			Detail:   "A node hook tried to replace its node, but the node no longer has a parent.",
		},
		"R051": {
			Category: CategoryDOM,
			Message:  "Invalid mount target",
			Detail:   "Mount needs an element node to append the rendered tree to.",
		},
		"R052": {
			Category: CategoryDOM,
			Message:  "Cannot append a built node",
			Detail:   "A node built from a view could not be appended to its parent. The parent is not an element or the child is an ancestor of it.",
		},

		// ============================================
		// Scheduler errors (R070-R089)
		// ============================================

		"R070": {
			Category: CategoryScheduler,
			Message:  "Host loop closed",
			Detail:   "Work was submitted to a host loop that has been shut down.",
		},

		// ============================================
		// Configuration and CLI errors (R100-R129)
		// ============================================

		"R100": {
			Category: CategoryConfig,
			Message:  "Invalid configuration",
			Detail:   "The configuration file could not be parsed or failed validation.",
		},
		"R101": {
			Category: CategoryConfig,
			Message:  "Unsupported configuration format",
			Detail:   "Configuration files must end in .yaml, .yml or .json.",
		},
		"R120": {
			Category: CategoryCLI,
			Message:  "Unknown demo",
			Detail:   "Run `cells demo --help` for the list of demos.",
		},
	}
)

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[code] = template
}
