package glshader

import (
	"errors"
	"fmt"

	"github.com/kael-ip/hexgl/gl"
)

// Sentinels matched by CompileError and LinkError.
var (
	ErrCompile = errors.New("glshader: compile failed")
	ErrLink    = errors.New("glshader: link failed")
)

// CompileError carries the info log of a shader that failed to compile.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("glshader: compile %s shader: %s", e.Stage, e.Log)
}

// Is matches ErrCompile.
func (e *CompileError) Is(target error) bool { return target == ErrCompile }

// LinkError carries the info log of a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string { return "glshader: link program: " + e.Log }

// Is matches ErrLink.
func (e *LinkError) Is(target error) bool { return target == ErrLink }

// ShaderSource sets the source of shader to the concatenation of sources.
func ShaderSource(f *gl.Functions, shader uint32, sources ...string) {
	f.ShaderSource(shader, int32(len(sources)), gl.Strs(sources...), nil)
}

// CompileShader creates and compiles a shader object. On failure the
// object is deleted and a *CompileError with the info log is returned.
func CompileShader(f *gl.Functions, stage Stage, sources ...string) (uint32, error) {
	shader := f.CreateShader(stage.ShaderType())
	if shader == 0 {
		return 0, fmt.Errorf("glshader: create %s shader: %w", stage, objectError(f))
	}
	ShaderSource(f, shader, sources...)
	f.CompileShader(shader)

	var status int32
	f.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == int32(gl.FALSE) {
		log := infoLog(f.GetShaderiv, f.GetShaderInfoLog, shader)
		f.DeleteShader(shader)
		return 0, &CompileError{Stage: stage, Log: log}
	}
	return shader, nil
}

// Attrib binds a vertex attribute name to an index before linking.
type Attrib struct {
	Name  string
	Index uint32
}

// LinkProgram links shaders into a new program object. The shaders are
// detached afterwards but not deleted.
func LinkProgram(f *gl.Functions, shaders []uint32, attribs ...Attrib) (uint32, error) {
	program := f.CreateProgram()
	if program == 0 {
		return 0, fmt.Errorf("glshader: create program: %w", objectError(f))
	}
	for _, s := range shaders {
		f.AttachShader(program, s)
	}
	for _, a := range attribs {
		f.BindAttribLocation(program, a.Index, gl.Str(a.Name))
	}
	f.LinkProgram(program)
	for _, s := range shaders {
		f.DetachShader(program, s)
	}

	var status int32
	f.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == int32(gl.FALSE) {
		log := infoLog(f.GetProgramiv, f.GetProgramInfoLog, program)
		f.DeleteProgram(program)
		return 0, &LinkError{Log: log}
	}
	return program, nil
}

// BuildProgram compiles one shader per source and links them. Shader
// objects are deleted once the program is linked or on failure.
func BuildProgram(f *gl.Functions, sources []Source, attribs ...Attrib) (uint32, error) {
	shaders := make([]uint32, 0, len(sources))
	defer func() {
		for _, s := range shaders {
			f.DeleteShader(s)
		}
	}()
	for _, src := range sources {
		s, err := CompileShader(f, src.Stage, src.Code)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", src.EntryPoint, err)
		}
		shaders = append(shaders, s)
	}
	return LinkProgram(f, shaders, attribs...)
}

// UniformLocation returns the location of a named uniform, or -1.
func UniformLocation(f *gl.Functions, program uint32, name string) int32 {
	return f.GetUniformLocation(program, gl.Str(name))
}

// AttribLocation returns the location of a named vertex attribute, or -1.
func AttribLocation(f *gl.Functions, program uint32, name string) int32 {
	return f.GetAttribLocation(program, gl.Str(name))
}

// objectError reports why a Create call returned 0.
func objectError(f *gl.Functions) error {
	if err := gl.CheckError(f); err != nil {
		return err
	}
	return errors.New("no object returned")
}

func infoLog(
	getiv func(uint32, gl.Enum, *int32),
	getLog func(uint32, int32, *int32, *uint8),
	object uint32,
) string {
	var n int32
	getiv(object, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	var written int32
	getLog(object, n, &written, &buf[0])
	if written >= 0 && int(written) < len(buf) {
		buf = buf[:written]
	}
	return gl.GoStringN(buf)
}
