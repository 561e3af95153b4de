// Package opengl provides an OpenGL 4.1 rendering backend for view3d.
package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/view3d"
)

// Renderer implements view3d.Renderer on an OpenGL 4.1 core context.
// It must be created and used on the thread that owns the GL context.
type Renderer struct {
	shader uint32

	modelLoc      int32
	viewLoc       int32
	projLoc       int32
	lightDirLoc   int32
	baseColorLoc  int32
	useTextureLoc int32
	texLoc        int32

	meshes   map[view3d.MeshHandle]*glMesh
	textures map[view3d.TextureHandle]uint32
	nextMesh view3d.MeshHandle
	nextTex  view3d.TextureHandle
	width    int
	height   int
}

// glMesh is the GPU side of one uploaded mesh.
type glMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// Vertex shader: standard model/view/projection transform with the normal
// carried into world space.
const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

out vec3 Normal;
out vec2 TexCoord;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main() {
    gl_Position = projection * view * model * vec4(aPos, 1.0);
    Normal = mat3(model) * aNormal;
    TexCoord = aTexCoord;
}
` + "\x00"

// Fragment shader: Lambert diffuse with a fixed ambient floor, modulating
// either the bound texture or the per-item base color.
const fragmentShaderSource = `
#version 410 core
in vec3 Normal;
in vec2 TexCoord;

out vec4 FragColor;

uniform vec3 lightDir;
uniform vec4 baseColor;
uniform bool useTexture;
uniform sampler2D tex;

void main() {
    vec3 n = normalize(Normal);
    float diffuse = max(dot(n, normalize(-lightDir)), 0.0);
    float shade = 0.25 + 0.75 * diffuse;

    vec4 color = baseColor;
    if (useTexture) {
        color = texture(tex, TexCoord) * baseColor;
    }
    FragColor = vec4(color.rgb * shade, color.a);
}
` + "\x00"

// NewRenderer creates a renderer for a surface of the given size. A current
// GL context is required.
func NewRenderer(width, height int) (*Renderer, error) {
	r := &Renderer{
		meshes:   make(map[view3d.MeshHandle]*glMesh),
		textures: make(map[view3d.TextureHandle]uint32),
		width:    width,
		height:   height,
	}

	var err error
	r.shader, err = createShaderProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader: %w", err)
	}

	r.modelLoc = gl.GetUniformLocation(r.shader, gl.Str("model\x00"))
	r.viewLoc = gl.GetUniformLocation(r.shader, gl.Str("view\x00"))
	r.projLoc = gl.GetUniformLocation(r.shader, gl.Str("projection\x00"))
	r.lightDirLoc = gl.GetUniformLocation(r.shader, gl.Str("lightDir\x00"))
	r.baseColorLoc = gl.GetUniformLocation(r.shader, gl.Str("baseColor\x00"))
	r.useTextureLoc = gl.GetUniformLocation(r.shader, gl.Str("useTexture\x00"))
	r.texLoc = gl.GetUniformLocation(r.shader, gl.Str("tex\x00"))

	return r, nil
}

// UploadMesh copies the mesh into a VAO/VBO/EBO triple. The interleaved
// []Vertex buffer is uploaded as-is; attribute offsets come from the
// package's fixed vertex layout.
func (r *Renderer) UploadMesh(m *view3d.Mesh) (view3d.MeshHandle, error) {
	if m == nil || len(m.Vertices) == 0 {
		return 0, fmt.Errorf("upload mesh: empty vertex buffer")
	}

	gm := &glMesh{indexCount: int32(len(m.Indices))}
	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*view3d.VertexStride,
		gl.Ptr(m.Vertices), gl.STATIC_DRAW)

	stride := int32(unsafe.Sizeof(view3d.Vertex{}))
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, unsafe.Offsetof(view3d.Vertex{}.Position))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, unsafe.Offsetof(view3d.Vertex{}.Normal))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, unsafe.Offsetof(view3d.Vertex{}.TexCoord))
	gl.EnableVertexAttribArray(2)

	if len(m.Indices) > 0 {
		gl.GenBuffers(1, &gm.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*2,
			gl.Ptr(m.Indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	r.nextMesh++
	r.meshes[r.nextMesh] = gm
	return r.nextMesh, nil
}

// ReleaseMesh frees the GPU buffers behind h. Unknown handles are ignored.
func (r *Renderer) ReleaseMesh(h view3d.MeshHandle) {
	gm, ok := r.meshes[h]
	if !ok {
		return
	}
	delete(r.meshes, h)
	if gm.ebo != 0 {
		gl.DeleteBuffers(1, &gm.ebo)
	}
	gl.DeleteBuffers(1, &gm.vbo)
	gl.DeleteVertexArrays(1, &gm.vao)
}

// UploadTexture copies packed RGBA pixels into a GL texture with mipmaps.
func (r *Renderer) UploadTexture(t *view3d.TextureData) (view3d.TextureHandle, error) {
	if t == nil || t.Width <= 0 || t.Height <= 0 {
		return 0, fmt.Errorf("upload texture: empty texture data")
	}
	if len(t.Pixels) < t.Width*t.Height*4 {
		return 0, fmt.Errorf("upload texture: pixel buffer too short for %dx%d", t.Width, t.Height)
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(t.Width), int32(t.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(t.Pixels))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	r.nextTex++
	r.textures[r.nextTex] = tex
	return r.nextTex, nil
}

// ReleaseTexture frees the GL texture behind h. Unknown handles are ignored.
func (r *Renderer) ReleaseTexture(h view3d.TextureHandle) {
	tex, ok := r.textures[h]
	if !ok {
		return
	}
	delete(r.textures, h)
	gl.DeleteTextures(1, &tex)
}

// Resize updates the viewport size.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// Draw clears the surface and renders every item in the frame. The
// renderer owns the whole frame, so it sets depth testing and back-face
// culling unconditionally rather than saving caller state.
func (r *Renderer) Draw(f *view3d.Frame) error {
	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	gl.ClearColor(f.ClearColor.X(), f.ClearColor.Y(), f.ClearColor.Z(), f.ClearColor.W())
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if len(f.Items) == 0 {
		return nil
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	gl.UseProgram(r.shader)
	view := f.View
	proj := f.Projection
	gl.UniformMatrix4fv(r.viewLoc, 1, false, &view[0])
	gl.UniformMatrix4fv(r.projLoc, 1, false, &proj[0])
	gl.Uniform3f(r.lightDirLoc, f.LightDir.X(), f.LightDir.Y(), f.LightDir.Z())
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(r.texLoc, 0)

	for _, item := range f.Items {
		gm, ok := r.meshes[item.Mesh]
		if !ok {
			return fmt.Errorf("draw: unknown mesh handle %d", item.Mesh)
		}
		if gm.indexCount == 0 {
			continue
		}

		model := item.Model
		gl.UniformMatrix4fv(r.modelLoc, 1, false, &model[0])
		gl.Uniform4f(r.baseColorLoc, item.Color.X(), item.Color.Y(), item.Color.Z(), item.Color.W())

		if tex, ok := r.textures[item.Texture]; item.Texture != 0 && ok {
			gl.BindTexture(gl.TEXTURE_2D, tex)
			gl.Uniform1i(r.useTextureLoc, 1)
		} else {
			gl.Uniform1i(r.useTextureLoc, 0)
		}

		gl.BindVertexArray(gm.vao)
		gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, gm.indexCount, gl.UNSIGNED_SHORT, 0, 0)
	}

	gl.BindVertexArray(0)
	return nil
}

// Delete releases every remaining GPU resource, including meshes and
// textures not yet released through their handles.
func (r *Renderer) Delete() {
	for h := range r.meshes {
		r.ReleaseMesh(h)
	}
	for h := range r.textures {
		r.ReleaseTexture(h)
	}
	if r.shader != 0 {
		gl.DeleteProgram(r.shader)
		r.shader = 0
	}
}

// createShaderProgram compiles and links a vertex/fragment shader pair.
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("program link failed: %s", string(log))
	}
	return program, nil
}

func compileShader(shaderType uint32, source string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compilation failed: %s", string(log))
	}
	return shader, nil
}
