// Package aggregate folds access log records into per-label request
// duration statistics.
//
// Records are grouped by LabelKey (method, path, status, host). Every key
// keeps a cumulative sum and count for the lifetime of the process. In
// histogram mode each key also keeps cumulative bucket counts over the
// fixed Bounds. In summary mode each key collects the request times seen
// since the last call to EndScrape, and quantiles are computed over that
// window only.
//
// An Aggregator is not safe for concurrent use. The scrape coordinator
// serializes access.
package aggregate
