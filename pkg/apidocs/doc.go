// Package apidocs implements the structured endpoint model behind API
// documentation pages: the endpoint record and collection types, the
// parse/serialize adapter for the opaque page content column, the in-memory
// endpoint editor, and the raw-JSON draft editor for open-ended response
// and example values.
package apidocs
