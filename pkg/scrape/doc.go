// Package scrape drives the exporter's pipeline on every metrics request.
//
// A Coordinator owns the position store, the parser, and the aggregate
// state. Each scrape tails the configured logs, parses the new lines,
// folds the records into the aggregate, and renders the result. The whole
// pass runs under one mutex, so concurrent scrapes never consume the same
// bytes twice or interleave updates. Nothing runs between scrapes.
//
// Failures inside a pass never fail the request: unreadable files and
// malformed lines are logged, counted, and skipped.
package scrape
