package glshader

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/ir"

	"github.com/kael-ip/hexgl/gl"
)

// Errors returned by Translate.
var (
	ErrNoEntryPoints = errors.New("glshader: no vertex or fragment entry points")
	ErrUnknownStage  = errors.New("glshader: unknown stage")
)

// Stage is a programmable pipeline stage.
type Stage uint8

// Stages a GL program links.
const (
	Vertex Stage = iota
	Fragment
)

// ParseStage parses "vertex" or "fragment".
func ParseStage(s string) (Stage, error) {
	switch s {
	case "vertex":
		return Vertex, nil
	case "fragment":
		return Fragment, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStage, s)
}

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

// MarshalText encodes s by name.
func (s Stage) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a stage name.
func (s *Stage) UnmarshalText(b []byte) error {
	v, err := ParseStage(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ShaderType returns the GL shader object type for s.
func (s Stage) ShaderType() gl.Enum {
	if s == Fragment {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

// Source is the GLSL translation of one entry point.
type Source struct {
	Stage      Stage    `json:"stage" yaml:"stage"`
	EntryPoint string   `json:"entry_point" yaml:"entry_point"`
	Version    string   `json:"version" yaml:"version"`
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	Code       string   `json:"code" yaml:"code"`
}

// Options configures Translate.
type Options struct {
	// Version is the target GLSL version. Zero means GLSL 3.30 core.
	Version glsl.Version

	// EntryPoints restricts translation to the named entry points.
	EntryPoints []string
}

// Translate converts WGSL source into one GLSL source per vertex and
// fragment entry point, in declaration order. Compute entry points are
// skipped.
func Translate(wgsl string, opts Options) ([]Source, error) {
	ast, err := naga.Parse(wgsl)
	if err != nil {
		return nil, fmt.Errorf("glshader: %w", err)
	}
	module, err := naga.LowerWithSource(ast, wgsl)
	if err != nil {
		return nil, fmt.Errorf("glshader: %w", err)
	}

	version := opts.Version
	if version == (glsl.Version{}) {
		version = glsl.Version330
	}
	wanted := make(map[string]bool, len(opts.EntryPoints))
	for _, name := range opts.EntryPoints {
		wanted[name] = true
	}

	var out []Source
	for i := range module.EntryPoints {
		ep := &module.EntryPoints[i]
		stage, ok := stageOf(ep.Stage)
		if !ok || (len(wanted) > 0 && !wanted[ep.Name]) {
			continue
		}
		code, info, err := glsl.Compile(module, glsl.Options{
			LangVersion:        version,
			EntryPoint:         ep.Name,
			ForceHighPrecision: true,
		})
		if err != nil {
			return nil, fmt.Errorf("glshader: %s: %w", ep.Name, err)
		}
		v := version
		if info.RequiredVersion != (glsl.Version{}) {
			v = info.RequiredVersion
		}
		out = append(out, Source{
			Stage:      stage,
			EntryPoint: ep.Name,
			Version:    v.String(),
			Extensions: info.UsedExtensions,
			Code:       code,
		})
		delete(wanted, ep.Name)
	}
	if len(wanted) > 0 {
		missing := slices.Sorted(maps.Keys(wanted))
		return nil, fmt.Errorf("glshader: entry points not found: %s", strings.Join(missing, ", "))
	}
	if len(out) == 0 {
		return nil, ErrNoEntryPoints
	}
	return out, nil
}

func stageOf(s ir.ShaderStage) (Stage, bool) {
	switch s {
	case ir.StageVertex:
		return Vertex, true
	case ir.StageFragment:
		return Fragment, true
	}
	return 0, false
}
