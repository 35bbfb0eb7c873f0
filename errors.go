package hexgl

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every typed error below matches exactly one of them via
// errors.Is.
var (
	// ErrInitialization reports that a context could not be created.
	ErrInitialization = errors.New("hexgl: initialization failed")

	// ErrUnsupportedCapability reports an entry point the driver does not
	// export.
	ErrUnsupportedCapability = errors.New("hexgl: unsupported capability")

	// ErrNative reports an error code raised by the native library.
	ErrNative = errors.New("hexgl: native error")

	// ErrInvalidUse reports an operation attempted in the wrong state.
	ErrInvalidUse = errors.New("hexgl: invalid use")

	// ErrNoPixelFormat is wrapped by an InitializationError when no pixel
	// format satisfies the manual selection criteria.
	ErrNoPixelFormat = errors.New("hexgl: no matching pixel format")
)

// Stage identifies the step of context creation that failed.
type Stage string

// Context creation stages.
const (
	StagePlatform      Stage = "platform"
	StageBinding       Stage = "binding"
	StageWindow        Stage = "window"
	StageDeviceContext Stage = "device-context"
	StagePixelFormat   Stage = "pixel-format"
	StageRenderContext Stage = "render-context"
)

// InitializationError is returned by Create when a native resource could not
// be acquired.
type InitializationError struct {
	Stage Stage
	Err   error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("hexgl: initialization failed at %s: %v", e.Stage, e.Err)
}

func (e *InitializationError) Unwrap() error { return e.Err }

// Is matches ErrInitialization.
func (e *InitializationError) Is(target error) bool { return target == ErrInitialization }

// UnsupportedCapabilityError is returned when neither the extension lookup
// nor the library's static exports provide Symbol.
type UnsupportedCapabilityError struct {
	Symbol string
}

func (e *UnsupportedCapabilityError) Error() string {
	return "hexgl: unsupported capability " + e.Symbol
}

// Is matches ErrUnsupportedCapability.
func (e *UnsupportedCapabilityError) Is(target error) bool {
	return target == ErrUnsupportedCapability
}

// Native error codes reported by glGetError.
const (
	NoError                     uint32 = 0
	InvalidEnum                 uint32 = 0x0500
	InvalidValue                uint32 = 0x0501
	InvalidOperation            uint32 = 0x0502
	StackOverflow               uint32 = 0x0503
	StackUnderflow              uint32 = 0x0504
	OutOfMemory                 uint32 = 0x0505
	InvalidFramebufferOperation uint32 = 0x0506
)

var nativeMessages = map[uint32]string{
	InvalidEnum:                 "invalid enum",
	InvalidValue:                "invalid value",
	InvalidOperation:            "invalid operation",
	StackOverflow:               "stack overflow",
	StackUnderflow:              "stack underflow",
	OutOfMemory:                 "out of memory",
	InvalidFramebufferOperation: "invalid framebuffer operation",
}

// NativeError carries an error code raised by the native library.
type NativeError struct {
	Code uint32
}

// Message returns the human-readable text for the code.
func (e *NativeError) Message() string {
	if msg, ok := nativeMessages[e.Code]; ok {
		return msg
	}
	return fmt.Sprintf("unknown error 0x%x", e.Code)
}

func (e *NativeError) Error() string {
	return "hexgl: native error: " + e.Message()
}

// Is matches ErrNative.
func (e *NativeError) Is(target error) bool { return target == ErrNative }

// InvalidUseError reports an operation that is not allowed in the current
// state, such as calling an entry point while the context is not current.
type InvalidUseError struct {
	Op     string
	Reason string
}

func (e *InvalidUseError) Error() string {
	return fmt.Sprintf("hexgl: %s: %s", e.Op, e.Reason)
}

// Is matches ErrInvalidUse.
func (e *InvalidUseError) Is(target error) bool { return target == ErrInvalidUse }
