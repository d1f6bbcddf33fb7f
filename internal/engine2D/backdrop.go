package engine2D

import (
	"ambient-portfolio/internal/engine2D/shader"
	"ambient-portfolio/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const orbCount = 3

type boundUniform struct {
	location int32
	kind     rl.ShaderUniformDataType
	values   []float32
}

type backdropLocations struct {
	Time, Pointer, Resolution, Scroll int32
}

// Backdrop fills the screen with the gradient and pulsing orbs. Without a
// compiled shader it falls back to a plain gradient with drawn orbs.
type Backdrop struct {
	shader    rl.Shader
	locs      backdropLocations
	uniforms  []boundUniform
	constants shader.ConstantShaderValues
}

func NewBackdrop(sources shader.Sources, reduced bool) *Backdrop {
	b := &Backdrop{constants: shader.BackdropConstants(reduced)}
	vert, frag, err := sources.Load("backdrop", map[string]int{"ORBS": orbCount})
	if err != nil {
		utils.Warn("Backdrop: %v, using the fallback gradient", err)
		return b
	}
	b.shader = LoadShader("backdrop", vert, frag)
	if b.shader.ID == 0 {
		return b
	}
	b.locs = backdropLocations{
		Time:       rl.GetShaderLocation(b.shader, "g_Time"),
		Pointer:    rl.GetShaderLocation(b.shader, "g_PointerPosition"),
		Resolution: rl.GetShaderLocation(b.shader, "g_Resolution"),
		Scroll:     rl.GetShaderLocation(b.shader, "g_Scroll"),
	}
	b.SetReduced(reduced)
	return b
}

// SetReduced swaps the constants for the reduced-animation preference.
func (b *Backdrop) SetReduced(reduced bool) {
	b.constants = shader.BackdropConstants(reduced)
	if b.shader.ID == 0 {
		return
	}
	b.uniforms = b.uniforms[:0]
	for _, u := range shader.ParseUniforms(b.constants) {
		loc := int32(-1)
		for _, name := range u.Names {
			if loc = rl.GetShaderLocation(b.shader, name); loc != -1 {
				break
			}
		}
		if loc == -1 {
			utils.Debug("Backdrop: uniform %s not used by shader", u.Key)
			continue
		}
		b.uniforms = append(b.uniforms, boundUniform{location: loc, kind: uniformType(u.Type), values: u.Values})
	}
}

func uniformType(t shader.UniformType) rl.ShaderUniformDataType {
	switch t {
	case shader.UniformVec2:
		return rl.ShaderUniformVec2
	case shader.UniformVec3:
		return rl.ShaderUniformVec3
	case shader.UniformVec4:
		return rl.ShaderUniformVec4
	}
	return rl.ShaderUniformFloat
}

// LoadShader compiles preprocessed sources, recovering from driver panics.
// A failed compile returns a shader with ID 0.
func LoadShader(name, vert, frag string) rl.Shader {
	var s rl.Shader
	func() {
		defer func() {
			if r := recover(); r != nil {
				utils.Error("Shader: %s - compilation panic (skipping): %v", name, r)
				s = rl.Shader{}
			}
		}()
		s = rl.LoadShaderFromMemory(vert, frag)
	}()
	if s.ID == 0 {
		utils.Warn("Shader: %s - failed to compile", name)
	} else {
		utils.Info("Shader: %s - loaded (ID: %d)", name, s.ID)
	}
	return s
}

// Draw paints the backdrop over the whole screen.
func (b *Backdrop) Draw(state shader.GlobalState) {
	w, h := int32(state.Width), int32(state.Height)
	if b.shader.ID == 0 {
		b.drawFallback(state)
		return
	}
	set := func(loc int32, values []float32, kind rl.ShaderUniformDataType) {
		if loc != -1 {
			rl.SetShaderValue(b.shader, loc, values, kind)
		}
	}
	p := state.Pointer()
	set(b.locs.Time, []float32{float32(state.Time)}, rl.ShaderUniformFloat)
	set(b.locs.Pointer, p[:], rl.ShaderUniformVec2)
	set(b.locs.Resolution, []float32{float32(state.Width), float32(state.Height)}, rl.ShaderUniformVec2)
	set(b.locs.Scroll, []float32{float32(state.Scroll)}, rl.ShaderUniformFloat)
	for _, u := range b.uniforms {
		rl.SetShaderValue(b.shader, u.location, u.values, u.kind)
	}

	rl.BeginShaderMode(b.shader)
	rl.DrawRectangle(0, 0, w, h, rl.White)
	rl.EndShaderMode()
}

func (b *Backdrop) drawFallback(state shader.GlobalState) {
	w, h := int32(state.Width), int32(state.Height)
	rl.DrawRectangleGradientV(0, 0, w, h/2, rl.NewColor(15, 23, 42, 255), rl.NewColor(59, 7, 100, 255))
	rl.DrawRectangleGradientV(0, h/2, w, h-h/2, rl.NewColor(59, 7, 100, 255), rl.NewColor(15, 23, 42, 255))

	rl.BeginBlendMode(rl.BlendAdditive)
	for _, o := range shader.Orbs(orbCount, state.Time, b.constants.GetFloat("PulseSpeed"), state.Scroll) {
		col := colorAccent
		if o.Second {
			col = colorViolet
		}
		center := rl.NewVector2(float32(o.X*state.Width), float32(o.Y*state.Height))
		radius := float32(o.Radius * state.Height)
		rl.DrawCircleGradient(int32(center.X), int32(center.Y), radius, fade(col, 0.25*o.Alpha), rl.Blank)
	}
	rl.EndBlendMode()
}

func (b *Backdrop) Close() {
	if b.shader.ID != 0 {
		rl.UnloadShader(b.shader)
		b.shader = rl.Shader{}
	}
}
