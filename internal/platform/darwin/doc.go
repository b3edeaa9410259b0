//go:build darwin

// Package darwin backs the platform interfaces with the macOS
// Accessibility, AppKit, and CoreGraphics APIs. Everything here needs
// cgo; when cgo is disabled the package compiles as a no-op stub and no
// provider is registered.
package darwin
