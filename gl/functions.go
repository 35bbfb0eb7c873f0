package gl

import "unsafe"

// Native scalar types.
type (
	Enum     = uint32
	Bitfield = uint32
	Boolean  = uint8
)

// Functions is the OpenGL capability interface. Each field is bound to the
// entry point named "gl" + field name when a context is created, and may
// only be called inside that context's Execute callback.
//
// Fields whose last result is an error are optional: calling one that the
// driver does not export returns an error wrapping
// hexgl.ErrUnsupportedCapability. Calling any other unresolved field panics.
type Functions struct {
	// State.
	GetError    func() Enum
	GetString   func(name Enum) uintptr
	GetIntegerv func(pname Enum, data *int32)
	GetFloatv   func(pname Enum, data *float32)
	Enable      func(capability Enum)
	Disable     func(capability Enum)
	IsEnabled   func(capability Enum) Boolean
	Hint        func(target, mode Enum)
	PixelStorei func(pname Enum, param int32)
	Flush       func()
	Finish      func()

	// Framebuffer operations.
	Viewport   func(x, y, width, height int32)
	Scissor    func(x, y, width, height int32)
	ClearColor func(red, green, blue, alpha float32)
	ClearDepth func(depth float64)
	Clear      func(mask Bitfield)
	ColorMask  func(red, green, blue, alpha Boolean)
	DepthMask  func(flag Boolean)
	DepthFunc  func(fn Enum)
	BlendFunc  func(sfactor, dfactor Enum)
	CullFace   func(mode Enum)
	FrontFace  func(mode Enum)
	LineWidth  func(width float32)
	ReadPixels func(x, y, width, height int32, format, xtype Enum, pixels unsafe.Pointer)

	// Textures.
	GenTextures    func(n int32, textures *uint32)
	DeleteTextures func(n int32, textures *uint32)
	BindTexture    func(target Enum, texture uint32)
	ActiveTexture  func(texture Enum)
	TexParameteri  func(target, pname Enum, param int32)
	TexImage2D     func(target Enum, level, internalFormat, width, height, border int32, format, xtype Enum, pixels unsafe.Pointer)
	TexSubImage2D  func(target Enum, level, xoffset, yoffset, width, height int32, format, xtype Enum, pixels unsafe.Pointer)

	// Buffers.
	GenBuffers    func(n int32, buffers *uint32)
	DeleteBuffers func(n int32, buffers *uint32)
	BindBuffer    func(target Enum, buffer uint32)
	BufferData    func(target Enum, size int, data unsafe.Pointer, usage Enum)
	BufferSubData func(target Enum, offset, size int, data unsafe.Pointer)

	// Shaders and programs.
	CreateShader       func(xtype Enum) uint32
	ShaderSource       func(shader uint32, count int32, strings **uint8, length *int32)
	CompileShader      func(shader uint32)
	GetShaderiv        func(shader uint32, pname Enum, params *int32)
	GetShaderInfoLog   func(shader uint32, bufSize int32, length *int32, infoLog *uint8)
	DeleteShader       func(shader uint32)
	CreateProgram      func() uint32
	AttachShader       func(program, shader uint32)
	DetachShader       func(program, shader uint32)
	BindAttribLocation func(program, index uint32, name *uint8)
	LinkProgram        func(program uint32)
	GetProgramiv       func(program uint32, pname Enum, params *int32)
	GetProgramInfoLog  func(program uint32, bufSize int32, length *int32, infoLog *uint8)
	UseProgram         func(program uint32)
	DeleteProgram      func(program uint32)
	GetUniformLocation func(program uint32, name *uint8) int32
	GetAttribLocation  func(program uint32, name *uint8) int32
	Uniform1i          func(location, v0 int32)
	Uniform1f          func(location int32, v0 float32)
	Uniform2f          func(location int32, v0, v1 float32)
	Uniform3f          func(location int32, v0, v1, v2 float32)
	Uniform4f          func(location int32, v0, v1, v2, v3 float32)
	UniformMatrix4fv   func(location, count int32, transpose Boolean, value *float32)

	// Vertex specification and drawing.
	EnableVertexAttribArray  func(index uint32)
	DisableVertexAttribArray func(index uint32)
	VertexAttribPointer      func(index uint32, size int32, xtype Enum, normalized Boolean, stride int32, offset uintptr)
	DrawArrays               func(mode Enum, first, count int32)
	DrawElements             func(mode Enum, count int32, xtype Enum, indices uintptr)

	// OpenGL 3.0 vertex arrays and framebuffer objects.
	GenVertexArrays         func(n int32, arrays *uint32) error
	DeleteVertexArrays      func(n int32, arrays *uint32) error
	BindVertexArray         func(array uint32) error
	GenFramebuffers         func(n int32, framebuffers *uint32) error
	DeleteFramebuffers      func(n int32, framebuffers *uint32) error
	BindFramebuffer         func(target Enum, framebuffer uint32) error
	FramebufferTexture2D    func(target, attachment, textarget Enum, texture uint32, level int32) error
	CheckFramebufferStatus  func(target Enum) (Enum, error)
	GenerateMipmap          func(target Enum) error
	GenRenderbuffers        func(n int32, renderbuffers *uint32) error
	DeleteRenderbuffers     func(n int32, renderbuffers *uint32) error
	BindRenderbuffer        func(target Enum, renderbuffer uint32) error
	RenderbufferStorage     func(target, internalFormat Enum, width, height int32) error
	FramebufferRenderbuffer func(target, attachment, renderbufferTarget Enum, renderbuffer uint32) error
}
