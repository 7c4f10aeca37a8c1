// Package gateway provides the Mixit session and API gateway server.

// This package contains the main application entry points. The actual
// documentation is organized into subpackages:

// - internal/handlers: HTTP request handlers for all gateway endpoints
// - internal/upstream: Mixit backend API client and pagination
// - internal/session: Cookie session issuance and Kakao OAuth
// - internal/sse: Notification event stream bridging
// - internal/client: Go client library with query cache and optimistic state
// - internal/optimistic: Tentative state with commit/rollback
// - internal/middleware: HTTP middleware (rate limiting, caching, metrics)
// - internal/cache: Redis connection handling
// - internal/errors: Error taxonomy shared across handlers
// - internal/config: Environment configuration
// - internal/logger: Structured logging setup
// - internal/telemetry: OpenTelemetry tracing setup

// See the individual package documentation for detailed reference.
package gateway
