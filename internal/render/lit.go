package render

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio-scene/internal/lighting"
)

// Lit is the directional sun + ambient shader shared by the ground and the model.
// Uniform locations are looked up once; values are pushed by Apply.
type Lit struct {
	shader   rl.Shader
	light    lighting.Lighting
	sunDir   int32
	sunColor int32
	ambient  int32
	tiling   int32
}

// NewLit compiles the shader. Requires an open window (GL context).
func NewLit(light lighting.Lighting) (*Lit, error) {
	shader := rl.LoadShaderFromMemory(litVS, litFS)
	if !rl.IsShaderValid(shader) {
		return nil, errors.New("render: lit shader failed to compile")
	}
	l := &Lit{
		shader:   shader,
		light:    light,
		sunDir:   rl.GetShaderLocation(shader, "sunDir"),
		sunColor: rl.GetShaderLocation(shader, "sunColor"),
		ambient:  rl.GetShaderLocation(shader, "ambient"),
		tiling:   rl.GetShaderLocation(shader, "tiling"),
	}
	l.Apply()
	return l, nil
}

// Shader is the compiled program, for assigning to materials.
func (l *Lit) Shader() rl.Shader { return l.shader }

// Apply uploads the light set. Uniforms persist, so once after a change is enough.
func (l *Lit) Apply() {
	// cgo-safe: local arrays
	dir := [3]float32(l.light.SunDirection)
	sun := [3]float32(l.light.SunColor)
	amb := [3]float32(l.light.Ambient)
	if l.sunDir >= 0 {
		rl.SetShaderValueV(l.shader, l.sunDir, dir[:], rl.ShaderUniformVec3, 1)
	}
	if l.sunColor >= 0 {
		rl.SetShaderValueV(l.shader, l.sunColor, sun[:], rl.ShaderUniformVec3, 1)
	}
	if l.ambient >= 0 {
		rl.SetShaderValueV(l.shader, l.ambient, amb[:], rl.ShaderUniformVec3, 1)
	}
	l.SetTiling(1)
}

// SetTiling repeats the albedo texture n times across the mesh UV range.
func (l *Lit) SetTiling(n float32) {
	if l.tiling >= 0 {
		rl.SetShaderValue(l.shader, l.tiling, []float32{n}, rl.ShaderUniformFloat)
	}
}

// Unload frees the GPU program.
func (l *Lit) Unload() {
	rl.UnloadShader(l.shader)
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matNormal;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  fragTexCoord = vertexTexCoord;
  fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	litFS = `#version 330
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 sunDir;
uniform vec3 sunColor;
uniform vec3 ambient;
uniform float tiling;
out vec4 finalColor;
void main() {
  vec4 tint = texture(texture0, fragTexCoord * tiling) * colDiffuse;
  float NdotL = max(dot(normalize(fragNormal), normalize(sunDir)), 0.0);
  vec3 lit = tint.rgb * (ambient + sunColor * NdotL);
  finalColor = vec4(min(lit, vec3(1.0)), tint.a);
}
`
)
