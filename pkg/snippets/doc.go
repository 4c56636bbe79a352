// Package snippets generates ready-to-run request code for documented
// endpoints. Targets (curl, javascript, python, ...) are registered in a
// registry; generation is a pure function of the endpoint record and the
// user-supplied environment values, so output is byte-identical across
// re-renders for the same input.
package snippets
