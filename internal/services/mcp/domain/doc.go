// Package domain translates MCP tool calls into decoder and storage
// operations.
//
// The package is intentionally explicit about that mapping:
// - parse MCP tool input into decoder and storage arguments,
// - run the pure decode or the storage read,
// - and surface structured outputs that MCP clients can render.
//
// Handlers hold no connection state of their own; every dependency is
// injected by the service layer at registration time.
package domain
