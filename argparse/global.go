package argparse

import "sync"

var (
	globalOnce     sync.Once
	globalRegistry *Registry
)

// Global returns the process-wide Registry. It is created lazily on first
// use and lives for the rest of the process; every Parser resolves names
// against it unless IgnoreGlobalArgs opted the parser out.
//
// Concurrent declaration on the global Registry is not supported; declare
// globals from package-level variable initializers or early in main, before
// any goroutine parses.
func Global() *Registry {
	globalOnce.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// AddGlobalFlag declares a flag on the process-wide Registry so every
// merging Parser resolves it.
func AddGlobalFlag(name, help string) *FlagArg {
	return Global().AddFlag(name, help)
}

// AddGlobalArg declares a single-value argument on the process-wide
// Registry.
func AddGlobalArg[T any](name, help string) *Arg[T] {
	return AddArgTo[T](Global(), name, help)
}

// AddGlobalMultiArg declares a multi-value argument on the process-wide
// Registry.
func AddGlobalMultiArg[T any](name, help string) *MultiArg[T] {
	return AddMultiArgTo[T](Global(), name, help)
}
