// Package branding centralizes user-facing product naming.
package branding

// AppName is the product name surfaced to MCP clients and CLI output.
const AppName = "Cordon"
