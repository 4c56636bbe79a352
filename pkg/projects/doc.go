// Package projects implements documentation project and page management.
// A project belongs to a company, declares a template type, and holds an
// ordered set of pages whose content column is an opaque text blob; only
// api-docs projects interpret that text as an endpoint collection.
package projects
