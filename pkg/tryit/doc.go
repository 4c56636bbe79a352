// Package tryit implements the live-request runner and the endpoint
// viewer model: issuing a documented request against a user-supplied
// environment, recording outcomes into a bounded history, and the
// grouping/search/filter/sort pipeline public documentation pages render
// from.
package tryit
