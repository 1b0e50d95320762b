// Package opengl draws planned frames with an OpenGL 4.1 core context.
package opengl

import (
	"fmt"
	"log/slog"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"diorama/core"
	"diorama/math"
	"diorama/renderer"
	"diorama/scene"
)

// gpuMesh holds the buffer objects for one uploaded shape.
type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// Stats describes the most recent Render call.
type Stats struct {
	Objects   int
	Triangles int
	Culled    int
	Shadowed  int
}

type uniforms struct {
	mvp, model, lightViewProj int32

	sunDir, sunColor, sunRadiance, hasSun, ambientColor int32

	pointLightCount    int32
	pointLightPos      [renderer.MaxPointLights]int32
	pointLightColor    [renderer.MaxPointLights]int32
	pointLightRadiance [renderer.MaxPointLights]int32
	pointLightRange    [renderer.MaxPointLights]int32

	cameraPos int32

	matBaseColor, matMetallic, matRoughness, matReflectance, matEmissive int32

	baseColorTex, hasTexture int32

	shadowMap, hasShadows, shadowTexel int32
}

// Renderer is the OpenGL backend. Meshes are built once per distinct
// shape and textures once per handle.
type Renderer struct {
	log *slog.Logger

	program uint32
	u       uniforms

	shadowProg   uint32
	shadowMVPLoc int32
	shadowMap    *ShadowMap

	viewportW int32
	viewportH int32

	meshes   map[scene.Shape]*gpuMesh
	textures map[scene.TextureID]uint32

	stats Stats
}

// NewRenderer initialises OpenGL. The window's context must be current.
// A shadowSize of zero disables the shadow map.
func NewRenderer(logger *slog.Logger, shadowSize int) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("main shader compile: %w", err)
	}
	shadowProg, err := newProgram(depthVertSrc, depthFragSrc)
	if err != nil {
		gl.DeleteProgram(prog)
		return nil, fmt.Errorf("depth shader compile: %w", err)
	}

	r := &Renderer{
		log:          logger,
		program:      prog,
		shadowProg:   shadowProg,
		shadowMVPLoc: gl.GetUniformLocation(shadowProg, gl.Str("lightMVP\x00")),
		meshes:       make(map[scene.Shape]*gpuMesh),
		textures:     make(map[scene.TextureID]uint32),
	}
	r.resolveUniforms()

	if shadowSize > 0 {
		sm, err := NewShadowMap(shadowSize)
		if err != nil {
			r.Destroy()
			return nil, fmt.Errorf("shadows: %w", err)
		}
		r.shadowMap = sm
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	gl.Enable(gl.FRAMEBUFFER_SRGB)
	// Mirrored and single-sided geometry is viewed from both sides.
	gl.Disable(gl.CULL_FACE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.UseProgram(prog)
	gl.Uniform1i(r.u.baseColorTex, 0)
	gl.Uniform1i(r.u.shadowMap, 1)
	return r, nil
}

func (r *Renderer) resolveUniforms() {
	loc := func(name string) int32 {
		return gl.GetUniformLocation(r.program, gl.Str(name+"\x00"))
	}
	u := &r.u
	u.mvp = loc("mvp")
	u.model = loc("model")
	u.lightViewProj = loc("lightViewProj")

	u.sunDir = loc("sunDir")
	u.sunColor = loc("sunColor")
	u.sunRadiance = loc("sunRadiance")
	u.hasSun = loc("hasSun")
	u.ambientColor = loc("ambientColor")

	u.pointLightCount = loc("pointLightCount")
	for i := 0; i < renderer.MaxPointLights; i++ {
		u.pointLightPos[i] = loc(fmt.Sprintf("pointLightPos[%d]", i))
		u.pointLightColor[i] = loc(fmt.Sprintf("pointLightColor[%d]", i))
		u.pointLightRadiance[i] = loc(fmt.Sprintf("pointLightRadiance[%d]", i))
		u.pointLightRange[i] = loc(fmt.Sprintf("pointLightRange[%d]", i))
	}

	u.cameraPos = loc("cameraPos")

	u.matBaseColor = loc("matBaseColor")
	u.matMetallic = loc("matMetallic")
	u.matRoughness = loc("matRoughness")
	u.matReflectance = loc("matReflectance")
	u.matEmissive = loc("matEmissive")

	u.baseColorTex = loc("baseColorTex")
	u.hasTexture = loc("hasTexture")

	u.shadowMap = loc("shadowMap")
	u.hasShadows = loc("hasShadows")
	u.shadowTexel = loc("shadowTexel")
}

// SetViewport resizes the default framebuffer viewport.
func (r *Renderer) SetViewport(width, height int) {
	r.viewportW = int32(width)
	r.viewportH = int32(height)
	gl.Viewport(0, 0, r.viewportW, r.viewportH)
}

// UploadTextures sends every texture in w to the GPU.
func (r *Renderer) UploadTextures(w *scene.World) error {
	for id := scene.TextureID(1); int(id) <= w.TextureCount(); id++ {
		if _, ok := r.textures[id]; ok {
			continue
		}
		tex := w.Texture(id)
		glid, err := uploadTexture(tex)
		if err != nil {
			return fmt.Errorf("upload texture %d: %w", id, err)
		}
		r.textures[id] = glid
		r.log.Debug("texture uploaded", "name", tex.Name, "size", tex.Width)
	}
	return nil
}

// Render draws f: the shadow pass, then opaque draws, then blended draws
// in the order given.
func (r *Renderer) Render(f *renderer.Frame) {
	r.stats = Stats{Culled: f.Culled}

	shadows := f.Shadows && r.shadowMap != nil
	if shadows {
		r.shadowPass(f)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, r.viewportW, r.viewportH)
	gl.ClearColor(f.Clear.R, f.Clear.G, f.Clear.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)
	r.applyFrame(f, shadows)

	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	for i := range f.Opaque {
		r.draw(&f.Opaque[i], f.ViewProj)
	}

	if len(f.Transparent) > 0 {
		gl.Enable(gl.BLEND)
		gl.DepthMask(false)
		for i := range f.Transparent {
			r.draw(&f.Transparent[i], f.ViewProj)
		}
		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}
}

func (r *Renderer) shadowPass(f *renderer.Frame) {
	r.shadowMap.bind()
	gl.UseProgram(r.shadowProg)
	for i := range f.Opaque {
		d := &f.Opaque[i]
		if !d.CastShadow {
			continue
		}
		gpu := r.ensureUploaded(d.Shape)
		if gpu == nil {
			continue
		}
		lightMVP := d.Model.Mul(f.LightVP)
		gl.UniformMatrix4fv(r.shadowMVPLoc, 1, false, &lightMVP[0][0])
		gl.BindVertexArray(gpu.vao)
		gl.DrawElements(gl.TRIANGLES, gpu.indexCount, gl.UNSIGNED_INT, nil)
		r.stats.Shadowed++
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) applyFrame(f *renderer.Frame, shadows bool) {
	u := &r.u
	gl.Uniform3f(u.ambientColor, f.Ambient.R, f.Ambient.G, f.Ambient.B)
	gl.Uniform3f(u.cameraPos, f.CameraPos.X, f.CameraPos.Y, f.CameraPos.Z)

	if sun := f.Sun; sun != nil {
		gl.Uniform1i(u.hasSun, 1)
		gl.Uniform3f(u.sunDir, sun.Direction.X, sun.Direction.Y, sun.Direction.Z)
		gl.Uniform3f(u.sunColor, sun.Color.R, sun.Color.G, sun.Color.B)
		gl.Uniform1f(u.sunRadiance, sun.Radiance)
	} else {
		gl.Uniform1i(u.hasSun, 0)
	}

	for i, p := range f.Points {
		gl.Uniform3f(u.pointLightPos[i], p.Position.X, p.Position.Y, p.Position.Z)
		gl.Uniform3f(u.pointLightColor[i], p.Color.R, p.Color.G, p.Color.B)
		gl.Uniform1f(u.pointLightRadiance[i], p.Radiance)
		gl.Uniform1f(u.pointLightRange[i], p.Range)
	}
	gl.Uniform1i(u.pointLightCount, int32(len(f.Points)))

	lightVP := f.LightVP
	gl.UniformMatrix4fv(u.lightViewProj, 1, false, &lightVP[0][0])
	if shadows {
		gl.ActiveTexture(gl.TEXTURE1)
		gl.BindTexture(gl.TEXTURE_2D, r.shadowMap.DepthTex)
		gl.Uniform1i(u.hasShadows, 1)
		gl.Uniform1f(u.shadowTexel, r.shadowMap.Texel())
	} else {
		gl.Uniform1i(u.hasShadows, 0)
	}
}

func (r *Renderer) draw(d *renderer.Draw, viewProj math.Mat4) {
	gpu := r.ensureUploaded(d.Shape)
	if gpu == nil {
		return
	}
	model := d.Model
	mvp := model.Mul(viewProj)
	gl.UniformMatrix4fv(r.u.mvp, 1, false, &mvp[0][0])
	gl.UniformMatrix4fv(r.u.model, 1, false, &model[0][0])
	r.applyMaterial(&d.Material)

	gl.BindVertexArray(gpu.vao)
	gl.DrawElements(gl.TRIANGLES, gpu.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)

	r.stats.Objects++
	r.stats.Triangles += int(gpu.indexCount) / 3
}

func (r *Renderer) applyMaterial(mat *scene.Material) {
	u := &r.u
	base := mat.BaseColor.Linear()
	emissive := mat.Emissive.Linear()
	gl.Uniform4f(u.matBaseColor, base.R, base.G, base.B, base.A)
	gl.Uniform1f(u.matMetallic, mat.Metallic)
	gl.Uniform1f(u.matRoughness, mat.Roughness)
	gl.Uniform1f(u.matReflectance, mat.Reflectance)
	gl.Uniform3f(u.matEmissive, emissive.R, emissive.G, emissive.B)

	if glid, ok := r.textures[mat.Texture]; ok && mat.HasTexture() {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, glid)
		gl.Uniform1i(u.hasTexture, 1)
	} else {
		gl.Uniform1i(u.hasTexture, 0)
	}
}

// Stats returns counters from the most recent Render call.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// MeshCount reports how many distinct shapes have been uploaded.
func (r *Renderer) MeshCount() int {
	return len(r.meshes)
}

func (r *Renderer) ensureUploaded(shape scene.Shape) *gpuMesh {
	if gpu, ok := r.meshes[shape]; ok {
		return gpu
	}
	mesh := shape.Mesh()
	if mesh == nil || len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		r.meshes[shape] = nil
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))
	gpu := &gpuMesh{indexCount: int32(len(mesh.Indices))}

	gl.GenVertexArrays(1, &gpu.vao)
	gl.GenBuffers(1, &gpu.vbo)
	gl.BindVertexArray(gpu.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(stride), gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)

	var v core.Vertex
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.Position))))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.Normal))))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.UV))))

	gl.GenBuffers(1, &gpu.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	r.meshes[shape] = gpu
	r.log.Debug("mesh uploaded", "shape", shape.String(), "vertices", len(mesh.Vertices))
	return gpu
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	for shape, gpu := range r.meshes {
		if gpu != nil {
			gl.DeleteVertexArrays(1, &gpu.vao)
			gl.DeleteBuffers(1, &gpu.vbo)
			gl.DeleteBuffers(1, &gpu.ebo)
		}
		delete(r.meshes, shape)
	}
	for id, glid := range r.textures {
		gl.DeleteTextures(1, &glid)
		delete(r.textures, id)
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
	}
	if r.shadowProg != 0 {
		gl.DeleteProgram(r.shadowProg)
	}
	gl.DeleteProgram(r.program)
}

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", log)
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
