package graphics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"asset-viewer/internal/orbit"
)

const (
	// Flat content surface: 4:3 aspect, in world units.
	surfaceWidth  = 4
	surfaceHeight = 3

	// The accent border sits slightly behind the surface and slightly
	// larger.
	borderScale  = 1.08
	borderOffset = -0.06
	borderAlpha  = 0.45

	// Panorama sphere: large and inward-facing (drawn with backface
	// culling off so the interior is visible).
	panoramaRadius = 500
	panoramaRings  = 32
	panoramaSlices = 32
)

// Surfaces caches the meshes, materials, and shaders shared by flat and
// panoramic content. GPU resources are created lazily on first use so they
// allocate after the window/GL context exists.
type Surfaces struct {
	quad     rl.Mesh
	quadOK   bool
	sphere   rl.Mesh
	sphereOK bool

	surfaceMtl rl.Material
	borderMtl  rl.Material
	panoMtl    rl.Material
	mtlOK      bool

	accent   rl.Color
	viewPos  [3]float32
	lightDir [3]float32
}

// NewSurfaces returns an empty cache with the given border accent color.
// Meshes are created on first draw.
func NewSurfaces(accent rl.Color) *Surfaces {
	return &Surfaces{
		accent:   accent,
		lightDir: [3]float32{0.5, 1, 0.5},
	}
}

// SetView sets camera position and direction-to-light for this frame. Call
// once per frame before drawing so lit surfaces get correct shading.
func (s *Surfaces) SetView(eye orbit.Vec3) {
	s.viewPos = [3]float32{eye.X, eye.Y, eye.Z}
}

func (s *Surfaces) ensureMaterials() {
	if s.mtlOK {
		return
	}
	s.surfaceMtl = rl.LoadMaterialDefault()
	if shader := rl.LoadShaderFromMemory(surfaceVS, surfaceFS); rl.IsShaderValid(shader) {
		s.surfaceMtl.Shader = shader
	}
	s.borderMtl = rl.LoadMaterialDefault()
	if albedo := s.borderMtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = s.accent
	}
	s.panoMtl = rl.LoadMaterialDefault()
	s.mtlOK = true
}

func (s *Surfaces) ensureQuad() {
	if s.quadOK {
		return
	}
	s.ensureMaterials()
	s.quad = rl.GenMeshPlane(surfaceWidth, surfaceHeight, 1, 1)
	s.quadOK = true
}

func (s *Surfaces) ensureSphere() {
	if s.sphereOK {
		return
	}
	s.ensureMaterials()
	s.sphere = rl.GenMeshSphere(panoramaRadius, panoramaRings, panoramaSlices)
	s.sphereOK = true
}

// DrawSurface draws the 4:3 content surface with its accent border at the
// given bob offset and sway angle, with the content at the given opacity.
// Double-sided: culling is off while drawing. Call between BeginMode3D and
// EndMode3D.
func (s *Surfaces) DrawSurface(tex rl.Texture2D, alpha, bob, sway float32) {
	s.ensureQuad()
	s.setShaderUniforms()

	// The plane mesh lies in XZ; stand it upright into XY, then sway and
	// bob. First argument of MatrixMultiply is applied first.
	upright := rl.MatrixRotateX(math32.Pi / 2)
	place := rl.MatrixMultiply(rl.MatrixRotateY(sway), rl.MatrixTranslate(0, bob, 0))

	borderM := rl.MatrixMultiply(rl.MatrixScale(borderScale, 1, borderScale), upright)
	borderM = rl.MatrixMultiply(borderM, rl.MatrixTranslate(0, 0, borderOffset))
	borderM = rl.MatrixMultiply(borderM, place)
	surfaceM := rl.MatrixMultiply(upright, place)

	rl.DisableBackfaceCulling()
	if albedo := s.borderMtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.Fade(s.accent, borderAlpha*alpha)
	}
	rl.DrawMesh(s.quad, s.borderMtl, borderM)

	rl.SetMaterialTexture(&s.surfaceMtl, rl.MapAlbedo, tex)
	if albedo := s.surfaceMtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.Fade(rl.White, alpha)
	}
	rl.DrawMesh(s.quad, s.surfaceMtl, surfaceM)
	rl.EnableBackfaceCulling()
}

// DrawPanorama draws the inward-facing video sphere centered at the origin.
// Call between BeginMode3D and EndMode3D.
func (s *Surfaces) DrawPanorama(tex rl.Texture2D) {
	s.ensureSphere()
	rl.SetMaterialTexture(&s.panoMtl, rl.MapAlbedo, tex)
	rl.DisableBackfaceCulling()
	rl.DrawMesh(s.sphere, s.panoMtl, rl.MatrixIdentity())
	rl.EnableBackfaceCulling()
}

// Unload releases the cached meshes and materials. Call once, during final
// teardown while the GL context still exists.
func (s *Surfaces) Unload() {
	if s.quadOK {
		rl.UnloadMesh(&s.quad)
		s.quadOK = false
	}
	if s.sphereOK {
		rl.UnloadMesh(&s.sphere)
		s.sphereOK = false
	}
	if s.mtlOK {
		rl.UnloadMaterial(s.surfaceMtl)
		rl.UnloadMaterial(s.borderMtl)
		rl.UnloadMaterial(s.panoMtl)
		s.mtlOK = false
	}
}

// Ambient and directional light terms for the content surface.
var surfaceAmbient = [4]float32{0.35, 0.36, 0.4, 1.0}
var surfaceLightColor = [3]float32{1.0, 0.98, 0.95}

const surfaceLightIntensity = float32(0.7)

// setShaderUniforms sets viewPos, lightDir, ambient, and light color on the
// surface shader (cgo-safe: local arrays).
func (s *Surfaces) setShaderUniforms() {
	shader := s.surfaceMtl.Shader
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := [3]float32{s.viewPos[0], s.viewPos[1], s.viewPos[2]}
	lightDir := [3]float32{s.lightDir[0], s.lightDir[1], s.lightDir[2]}
	amb := [4]float32{surfaceAmbient[0], surfaceAmbient[1], surfaceAmbient[2], surfaceAmbient[3]}
	lightColor := [3]float32{surfaceLightColor[0], surfaceLightColor[1], surfaceLightColor[2]}
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{surfaceLightIntensity}, rl.ShaderUniformFloat)
	}
}

// Surface shader: albedo texture tinted by colDiffuse (which carries the
// fade alpha), lit by ambient plus one directional light.
const (
	surfaceVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	surfaceFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform sampler2D albedoMap;
out vec4 finalColor;
void main() {
  vec4 texColor = texture(albedoMap, fragTexCoord);
  vec4 tint = texColor * colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  float NdotL = abs(dot(N, L));
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  finalColor = vec4(amb + diffuse, tint.a);
}
`
)
