// Package hooks implements the DOM-patching hooks and the builder that turns
// vdom descriptions into DOM nodes.
//
// A NodeHook owns one node and replaces it wholesale when its render function
// reads a changed signal; a text result over a text node is patched in place.
// AttrHook, ClassHook and CSSVarHook set a single property on an existing
// element and never replace nodes.
//
// Every hook keeps the values its last render asked to keep alive (event
// listener registrations, mostly) and the child hooks it created. Both are
// released on the next update and on removal.
package hooks
