// Package accesslog parses JSON access log lines into validated records.
//
// Each line must be a single JSON object holding the request method, path,
// host, status code, and request time. Field locations are configurable as
// dotted paths; the defaults match nginx logs written with a nested JSON
// log_format:
//
//	{"http":{"response":{"status_code":"200"}},
//	 "nginx":{"access":{"method":"GET","url":"/","host":"example.com"},
//	          "time":{"request":"0.012"}}}
//
// Status codes and request times are accepted as JSON numbers or as
// strings holding numbers, since nginx's escape=json formats quote every
// variable. Any failure yields a *ParseError that wraps ErrInvalidJSON,
// ErrMissingField, or ErrInvalidField.
package accesslog
