//go:build !darwin

// On non-darwin platforms this package compiles as a no-op stub so the
// unconditional blank import in main builds everywhere; no provider is
// registered.
package darwin
