package accesslog

import "strconv"

// Record is one validated access log entry.
type Record struct {
	Method     string
	Path       string
	Host       string
	StatusCode int

	// RequestTime is the request duration in seconds.
	RequestTime float64
}

// StatusClass returns the first-digit class of the status code ("2xx").
func (r Record) StatusClass() string {
	return StatusClass(r.StatusCode)
}

// StatusClass maps a status code in [100, 599] to its class label.
// Codes outside that range yield "".
func StatusClass(code int) string {
	switch {
	case code >= 100 && code <= 199:
		return "1xx"
	case code >= 200 && code <= 299:
		return "2xx"
	case code >= 300 && code <= 399:
		return "3xx"
	case code >= 400 && code <= 499:
		return "4xx"
	case code >= 500 && code <= 599:
		return "5xx"
	default:
		return ""
	}
}

// StatusLabel renders the status code either exactly ("200") or as its
// class ("2xx").
func StatusLabel(code int, exact bool) string {
	if exact {
		return strconv.Itoa(code)
	}
	return StatusClass(code)
}
