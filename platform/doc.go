// Package platform defines the native binding a hexgl context is built on.
//
// A [Platform] wraps the windowing-system GL API (WGL on Windows): device
// contexts, pixel format negotiation, context creation, making a context
// current, and resolving entry points. Implementations register themselves
// from init, similar to database/sql drivers:
//
//	import _ "github.com/kael-ip/hexgl/internal/wgl"
//
// Tests and other hosts can register their own implementation under a new
// name, or pass one directly with hexgl.WithPlatform.
package platform
