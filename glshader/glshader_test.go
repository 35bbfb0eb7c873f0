package glshader

import (
	"errors"
	"strings"
	"testing"
	"unsafe"

	"github.com/gogpu/naga/glsl"

	"github.com/kael-ip/hexgl/gl"
)

const triangleWGSL = `
@vertex
fn vs_main(@location(0) pos: vec2<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(pos, 0.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.5, 0.0, 1.0);
}
`

func TestTranslate(t *testing.T) {
	srcs, err := Translate(triangleWGSL, Options{})
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if len(srcs) != 2 {
		t.Fatalf("Translate() returned %d sources, want 2", len(srcs))
	}
	tests := []struct {
		stage Stage
		entry string
		want  string
	}{
		{Vertex, "vs_main", "gl_Position"},
		{Fragment, "fs_main", "void main()"},
	}
	for i, tt := range tests {
		src := srcs[i]
		if src.Stage != tt.stage || src.EntryPoint != tt.entry {
			t.Errorf("source %d = %s %s, want %s %s", i, src.Stage, src.EntryPoint, tt.stage, tt.entry)
		}
		if !strings.HasPrefix(src.Code, "#version 330 core") {
			t.Errorf("%s: code does not start with the version directive:\n%s", tt.entry, src.Code)
		}
		if !strings.Contains(src.Code, tt.want) {
			t.Errorf("%s: code lacks %q:\n%s", tt.entry, tt.want, src.Code)
		}
	}
}

func TestTranslateOptions(t *testing.T) {
	srcs, err := Translate(triangleWGSL, Options{Version: glsl.VersionES300, EntryPoints: []string{"fs_main"}})
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if len(srcs) != 1 || srcs[0].EntryPoint != "fs_main" {
		t.Fatalf("Translate() = %+v, want fs_main only", srcs)
	}
	if !strings.HasPrefix(srcs[0].Code, "#version 300 es") {
		t.Errorf("code does not target GLSL ES 3.00:\n%s", srcs[0].Code)
	}

	if _, err := Translate(triangleWGSL, Options{EntryPoints: []string{"missing"}}); err == nil {
		t.Error("Translate() with unknown entry point succeeded")
	}
}

func TestTranslateErrors(t *testing.T) {
	if _, err := Translate("fn broken( {", Options{}); err == nil {
		t.Error("Translate() accepted invalid WGSL")
	}
	compute := `
@compute @workgroup_size(1)
fn main() {}
`
	if _, err := Translate(compute, Options{}); !errors.Is(err, ErrNoEntryPoints) {
		t.Errorf("Translate(compute only) error = %v, want ErrNoEntryPoints", err)
	}
}

func TestParseStage(t *testing.T) {
	for _, s := range []Stage{Vertex, Fragment} {
		got, err := ParseStage(s.String())
		if err != nil || got != s {
			t.Errorf("ParseStage(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseStage("geometry"); !errors.Is(err, ErrUnknownStage) {
		t.Errorf("ParseStage(geometry) error = %v", err)
	}
	if Vertex.ShaderType() != gl.VERTEX_SHADER || Fragment.ShaderType() != gl.FRAGMENT_SHADER {
		t.Error("ShaderType() mismatch")
	}

	b, err := Fragment.MarshalText()
	if err != nil || string(b) != "fragment" {
		t.Errorf("MarshalText() = %q, %v", b, err)
	}
	var s Stage
	if err := s.UnmarshalText([]byte("fragment")); err != nil || s != Fragment {
		t.Errorf("UnmarshalText() = %v, %v", s, err)
	}
	if err := s.UnmarshalText([]byte("compute")); !errors.Is(err, ErrUnknownStage) {
		t.Errorf("UnmarshalText(compute) error = %v", err)
	}
}

// fakeGL simulates the shader object calls of a driver. Sources containing
// "error" fail to compile; programs with a shader named "nolink" fail to
// link.
type fakeGL struct {
	next     uint32
	sources  map[uint32]string
	stages   map[uint32]gl.Enum
	compiled map[uint32]bool
	deleted  map[uint32]bool
	attached map[uint32][]uint32
	linked   map[uint32]bool
	attribs  map[string]uint32
}

func newFakeGL() *fakeGL {
	return &fakeGL{
		next:     1,
		sources:  make(map[uint32]string),
		stages:   make(map[uint32]gl.Enum),
		compiled: make(map[uint32]bool),
		deleted:  make(map[uint32]bool),
		attached: make(map[uint32][]uint32),
		linked:   make(map[uint32]bool),
		attribs:  make(map[string]uint32),
	}
}

func cString(p *uint8) string {
	return gl.GoString(uintptr(unsafe.Pointer(p)))
}

func writeLog(msg string, bufSize int32, length *int32, out *uint8) {
	buf := unsafe.Slice(out, bufSize)
	n := copy(buf[:bufSize-1], msg)
	buf[n] = 0
	*length = int32(n)
}

func (g *fakeGL) functions() *gl.Functions {
	return &gl.Functions{
		GetError: func() gl.Enum { return gl.NO_ERROR },
		CreateShader: func(xtype gl.Enum) uint32 {
			id := g.next
			g.next++
			g.stages[id] = xtype
			return id
		},
		ShaderSource: func(shader uint32, count int32, strs **uint8, _ *int32) {
			var b strings.Builder
			for _, p := range unsafe.Slice(strs, count) {
				b.WriteString(cString(p))
			}
			g.sources[shader] = b.String()
		},
		CompileShader: func(shader uint32) {
			g.compiled[shader] = !strings.Contains(g.sources[shader], "error")
		},
		GetShaderiv: func(shader uint32, pname gl.Enum, params *int32) {
			switch pname {
			case gl.COMPILE_STATUS:
				*params = 0
				if g.compiled[shader] {
					*params = 1
				}
			case gl.INFO_LOG_LENGTH:
				*params = int32(len("0:1: syntax error") + 1)
			}
		},
		GetShaderInfoLog: func(_ uint32, bufSize int32, length *int32, infoLog *uint8) {
			writeLog("0:1: syntax error", bufSize, length, infoLog)
		},
		DeleteShader: func(shader uint32) { g.deleted[shader] = true },
		CreateProgram: func() uint32 {
			id := g.next
			g.next++
			return id
		},
		AttachShader: func(program, shader uint32) {
			g.attached[program] = append(g.attached[program], shader)
		},
		DetachShader: func(uint32, uint32) {},
		BindAttribLocation: func(_ uint32, index uint32, name *uint8) {
			g.attribs[cString(name)] = index
		},
		LinkProgram: func(program uint32) {
			ok := true
			for _, s := range g.attached[program] {
				if strings.Contains(g.sources[s], "nolink") {
					ok = false
				}
			}
			g.linked[program] = ok
		},
		GetProgramiv: func(program uint32, pname gl.Enum, params *int32) {
			switch pname {
			case gl.LINK_STATUS:
				*params = 0
				if g.linked[program] {
					*params = 1
				}
			case gl.INFO_LOG_LENGTH:
				*params = 64
			}
		},
		GetProgramInfoLog: func(_ uint32, bufSize int32, length *int32, infoLog *uint8) {
			writeLog("unresolved symbol", bufSize, length, infoLog)
		},
		DeleteProgram: func(program uint32) { g.deleted[program] = true },
		GetUniformLocation: func(_ uint32, name *uint8) int32 {
			if cString(name) == "u_color" {
				return 3
			}
			return -1
		},
	}
}

func TestCompileShader(t *testing.T) {
	g := newFakeGL()
	f := g.functions()

	id, err := CompileShader(f, Fragment, "void main() {", "}")
	if err != nil {
		t.Fatalf("CompileShader() error = %v", err)
	}
	if g.sources[id] != "void main() {}" {
		t.Errorf("source = %q", g.sources[id])
	}
	if g.stages[id] != gl.FRAGMENT_SHADER {
		t.Errorf("shader type = %#x", g.stages[id])
	}

	id, err = CompileShader(f, Vertex, "error")
	var ce *CompileError
	if !errors.As(err, &ce) || id != 0 {
		t.Fatalf("CompileShader(bad) = %d, %v", id, err)
	}
	if ce.Stage != Vertex || ce.Log != "0:1: syntax error" {
		t.Errorf("CompileError = %+v", ce)
	}
	if !errors.Is(err, ErrCompile) {
		t.Error("error does not match ErrCompile")
	}
	if !g.deleted[2] {
		t.Error("failed shader was not deleted")
	}
}

func TestCreateShaderFailure(t *testing.T) {
	f := newFakeGL().functions()
	f.CreateShader = func(gl.Enum) uint32 { return 0 }
	f.GetError = func() gl.Enum { return gl.INVALID_ENUM }
	if _, err := CompileShader(f, Vertex, "x"); err == nil || !strings.Contains(err.Error(), "invalid enum") {
		t.Errorf("CompileShader() error = %v", err)
	}
}

func TestBuildProgram(t *testing.T) {
	g := newFakeGL()
	f := g.functions()
	srcs := []Source{
		{Stage: Vertex, EntryPoint: "vs", Code: "vertex"},
		{Stage: Fragment, EntryPoint: "fs", Code: "fragment"},
	}
	prog, err := BuildProgram(f, srcs, Attrib{Name: "a_pos", Index: 0}, Attrib{Name: "a_uv", Index: 1})
	if err != nil {
		t.Fatalf("BuildProgram() error = %v", err)
	}
	if !g.linked[prog] || len(g.attached[prog]) != 2 {
		t.Errorf("program %d not linked with both shaders", prog)
	}
	for _, s := range g.attached[prog] {
		if !g.deleted[s] {
			t.Errorf("shader %d not deleted after link", s)
		}
	}
	if g.attribs["a_uv"] != 1 {
		t.Errorf("attribs = %v", g.attribs)
	}
	if loc := UniformLocation(f, prog, "u_color"); loc != 3 {
		t.Errorf("UniformLocation(u_color) = %d", loc)
	}
	if loc := UniformLocation(f, prog, "u_missing"); loc != -1 {
		t.Errorf("UniformLocation(u_missing) = %d", loc)
	}
}

func TestBuildProgramFailures(t *testing.T) {
	g := newFakeGL()
	f := g.functions()

	_, err := BuildProgram(f, []Source{
		{Stage: Vertex, EntryPoint: "vs", Code: "vertex"},
		{Stage: Fragment, EntryPoint: "fs", Code: "error"},
	})
	if !errors.Is(err, ErrCompile) || !strings.HasPrefix(err.Error(), "fs: ") {
		t.Errorf("BuildProgram(compile error) = %v", err)
	}
	if !g.deleted[1] {
		t.Error("compiled vertex shader leaked")
	}

	_, err = BuildProgram(f, []Source{{Stage: Vertex, EntryPoint: "vs", Code: "nolink"}})
	var le *LinkError
	if !errors.As(err, &le) || le.Log != "unresolved symbol" {
		t.Errorf("BuildProgram(link error) = %v", err)
	}
}
