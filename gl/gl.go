package gl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kael-ip/hexgl"
	"github.com/kael-ip/hexgl/platform"
	"github.com/kael-ip/hexgl/synth"
)

// Binding returns the shared binding of Functions. It is synthesized on
// first use.
func Binding() (*synth.Binding[Functions], error) {
	return synth.For[Functions]()
}

// Create creates a context for the window hwnd bound to Functions.
func Create(hwnd platform.Handle, opts ...hexgl.Option) (*hexgl.Context[Functions], error) {
	return hexgl.Create[Functions](hwnd, opts...)
}

// CreateHidden creates a context on a hidden window owned by the context.
func CreateHidden(opts ...hexgl.Option) (*hexgl.Context[Functions], error) {
	return hexgl.CreateHidden[Functions](opts...)
}

// CheckError polls GetError once. It returns nil for NO_ERROR and a
// *hexgl.NativeError otherwise.
func CheckError(f *Functions) error {
	code := f.GetError()
	if code == NO_ERROR {
		return nil
	}
	return &hexgl.NativeError{Code: code}
}

// maxErrorPolls bounds DrainErrors on drivers that never clear the flag.
const maxErrorPolls = 32

// DrainErrors polls GetError until it reports NO_ERROR and joins every
// code seen.
func DrainErrors(f *Functions) error {
	var errs []error
	for range maxErrorPolls {
		err := CheckError(f)
		if err == nil {
			break
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Info describes the driver behind the current context.
type Info struct {
	Vendor                 string   `json:"vendor" yaml:"vendor"`
	Renderer               string   `json:"renderer" yaml:"renderer"`
	Version                string   `json:"version" yaml:"version"`
	ShadingLanguageVersion string   `json:"shading_language_version" yaml:"shading_language_version"`
	Extensions             []string `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// QueryInfo reads the driver strings. It must run inside Execute.
func QueryInfo(f *Functions) (Info, error) {
	info := Info{
		Vendor:                 GoString(f.GetString(VENDOR)),
		Renderer:               GoString(f.GetString(RENDERER)),
		Version:                GoString(f.GetString(VERSION)),
		ShadingLanguageVersion: GoString(f.GetString(SHADING_LANGUAGE_VERSION)),
		Extensions:             strings.Fields(GoString(f.GetString(EXTENSIONS))),
	}
	if err := CheckError(f); err != nil {
		return info, fmt.Errorf("gl: query info: %w", err)
	}
	return info, nil
}

// Version parses the leading "major.minor" of a VERSION string. It
// returns 0, 0 when the string does not start with one.
func Version(s string) (major, minor int) {
	if _, err := fmt.Sscanf(s, "%d.%d", &major, &minor); err != nil {
		return 0, 0
	}
	return major, minor
}
