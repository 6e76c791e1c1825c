package middleware

type contextKey string

// StartTimeKey holds the time LoggingMiddleware received the request.
const StartTimeKey contextKey = "start_time"
