package gl

// Boolean values.
const (
	FALSE Boolean = 0
	TRUE  Boolean = 1
)

// Error codes.
const (
	NO_ERROR                      Enum = 0
	INVALID_ENUM                  Enum = 0x0500
	INVALID_VALUE                 Enum = 0x0501
	INVALID_OPERATION             Enum = 0x0502
	STACK_OVERFLOW                Enum = 0x0503
	STACK_UNDERFLOW               Enum = 0x0504
	OUT_OF_MEMORY                 Enum = 0x0505
	INVALID_FRAMEBUFFER_OPERATION Enum = 0x0506
)

// Strings.
const (
	VENDOR                   Enum = 0x1F00
	RENDERER                 Enum = 0x1F01
	VERSION                  Enum = 0x1F02
	EXTENSIONS               Enum = 0x1F03
	SHADING_LANGUAGE_VERSION Enum = 0x8B8C
)

// Clear masks.
const (
	DEPTH_BUFFER_BIT   Bitfield = 0x00000100
	STENCIL_BUFFER_BIT Bitfield = 0x00000400
	COLOR_BUFFER_BIT   Bitfield = 0x00004000
)

// Primitives.
const (
	POINTS         Enum = 0x0000
	LINES          Enum = 0x0001
	LINE_LOOP      Enum = 0x0002
	LINE_STRIP     Enum = 0x0003
	TRIANGLES      Enum = 0x0004
	TRIANGLE_STRIP Enum = 0x0005
	TRIANGLE_FAN   Enum = 0x0006
)

// Capabilities and state queries.
const (
	CULL_FACE               Enum = 0x0B44
	DEPTH_TEST              Enum = 0x0B71
	STENCIL_TEST            Enum = 0x0B90
	BLEND                   Enum = 0x0BE2
	SCISSOR_TEST            Enum = 0x0C11
	VIEWPORT                Enum = 0x0BA2
	MAX_TEXTURE_SIZE        Enum = 0x0D33
	UNPACK_ALIGNMENT        Enum = 0x0CF5
	PACK_ALIGNMENT          Enum = 0x0D05
	MAX_VERTEX_ATTRIBS      Enum = 0x8869
	MAJOR_VERSION           Enum = 0x821B
	MINOR_VERSION           Enum = 0x821C
	NUM_EXTENSIONS          Enum = 0x821D
	MAX_TEXTURE_IMAGE_UNITS Enum = 0x8872
)

// Faces and comparison functions.
const (
	FRONT          Enum = 0x0404
	BACK           Enum = 0x0405
	FRONT_AND_BACK Enum = 0x0408
	CW             Enum = 0x0900
	CCW            Enum = 0x0901
	NEVER          Enum = 0x0200
	LESS           Enum = 0x0201
	EQUAL          Enum = 0x0202
	LEQUAL         Enum = 0x0203
	GREATER        Enum = 0x0204
	ALWAYS         Enum = 0x0207
)

// Blend factors.
const (
	ZERO                Enum = 0
	ONE                 Enum = 1
	SRC_COLOR           Enum = 0x0300
	ONE_MINUS_SRC_COLOR Enum = 0x0301
	SRC_ALPHA           Enum = 0x0302
	ONE_MINUS_SRC_ALPHA Enum = 0x0303
	DST_ALPHA           Enum = 0x0304
	ONE_MINUS_DST_ALPHA Enum = 0x0305
)

// Data types.
const (
	BYTE           Enum = 0x1400
	UNSIGNED_BYTE  Enum = 0x1401
	SHORT          Enum = 0x1402
	UNSIGNED_SHORT Enum = 0x1403
	INT            Enum = 0x1404
	UNSIGNED_INT   Enum = 0x1405
	FLOAT          Enum = 0x1406
)

// Pixel formats.
const (
	DEPTH_COMPONENT  Enum = 0x1902
	RED              Enum = 0x1903
	ALPHA            Enum = 0x1906
	RGB              Enum = 0x1907
	RGBA             Enum = 0x1908
	RGBA8            Enum = 0x8058
	BGRA             Enum = 0x80E1
	DEPTH24_STENCIL8 Enum = 0x88F0
)

// Textures.
const (
	TEXTURE_2D           Enum = 0x0DE1
	TEXTURE_MAG_FILTER   Enum = 0x2800
	TEXTURE_MIN_FILTER   Enum = 0x2801
	TEXTURE_WRAP_S       Enum = 0x2802
	TEXTURE_WRAP_T       Enum = 0x2803
	NEAREST              Enum = 0x2600
	LINEAR               Enum = 0x2601
	LINEAR_MIPMAP_LINEAR Enum = 0x2703
	REPEAT               Enum = 0x2901
	CLAMP_TO_EDGE        Enum = 0x812F
	TEXTURE0             Enum = 0x84C0
)

// Buffers.
const (
	ARRAY_BUFFER         Enum = 0x8892
	ELEMENT_ARRAY_BUFFER Enum = 0x8893
	STREAM_DRAW          Enum = 0x88E0
	STATIC_DRAW          Enum = 0x88E4
	DYNAMIC_DRAW         Enum = 0x88E8
)

// Shaders and programs.
const (
	FRAGMENT_SHADER   Enum = 0x8B30
	VERTEX_SHADER     Enum = 0x8B31
	DELETE_STATUS     Enum = 0x8B80
	COMPILE_STATUS    Enum = 0x8B81
	LINK_STATUS       Enum = 0x8B82
	VALIDATE_STATUS   Enum = 0x8B83
	INFO_LOG_LENGTH   Enum = 0x8B84
	ACTIVE_UNIFORMS   Enum = 0x8B86
	ACTIVE_ATTRIBUTES Enum = 0x8B89
	SHADER_TYPE       Enum = 0x8B4F
)

// Framebuffer objects.
const (
	FRAMEBUFFER              Enum = 0x8D40
	READ_FRAMEBUFFER         Enum = 0x8CA8
	DRAW_FRAMEBUFFER         Enum = 0x8CA9
	RENDERBUFFER             Enum = 0x8D41
	COLOR_ATTACHMENT0        Enum = 0x8CE0
	DEPTH_ATTACHMENT         Enum = 0x8D00
	STENCIL_ATTACHMENT       Enum = 0x8D20
	DEPTH_STENCIL_ATTACHMENT Enum = 0x821A
	FRAMEBUFFER_COMPLETE     Enum = 0x8CD5
	FRAMEBUFFER_UNSUPPORTED  Enum = 0x8CDD
)
