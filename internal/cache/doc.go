// Package cache provides the memo table behind entry point resolution.
//
// A [Cache] maps a key to a value computed at most once:
//
//	procs := cache.New[*synth.Descriptor, platform.Proc](func(d *synth.Descriptor) string {
//	    return d.Name()
//	})
//	proc, err := procs.GetOrFill(desc, resolve)
//
// Concurrent misses on one key share a single fill. Failed fills are not
// remembered, which lets a lookup that failed under one condition succeed
// later under another.
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
