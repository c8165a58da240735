package game

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f32"
)

// boneUniform is the uniform name of bone i in the skinning shader
func boneUniform(i int) string {
	return fmt.Sprintf("finalBonesMatrices[%d]", i)
}

// TargetFacing returns the yaw in degrees that turns a target at pos toward
// player, ignoring height. ok is false when the two are vertically aligned.
func TargetFacing(pos, player Vec3) (yaw float64, ok bool) {
	dx := player.X - pos.X
	dz := player.Z - pos.Z
	if dx*dx+dz*dz < 1e-6 {
		return 0, false
	}
	return math.Atan2(dx, dz) * 180 / math.Pi, true
}

// PlayerModelMatrix places the player model; the mesh faces away from its own +Z
func PlayerModelMatrix(p *Player, scale float64) f32.Mat4 {
	m := Mul4(Translate(p.Position), RotateY(p.Yaw+180))
	return Mul4(m, ScaleUniform(scale))
}

// TargetModelMatrix places a target model facing the player
func TargetModelMatrix(t *Target, player Vec3) f32.Mat4 {
	m := Translate(t.Position)
	if yaw, ok := TargetFacing(t.Position, player); ok {
		m = Mul4(m, RotateY(yaw))
	}
	return Mul4(m, ScaleUniform(t.Scale))
}

// DrawScene uploads camera, bone and model uniforms and draws the player and
// every live target. A dead player is not drawn.
func (g *Game) DrawScene(sh ShaderContext, playerModel, targetModel SkinnedModel, aspect float64) {
	sh.SetMat4("projection", g.camera.ProjectionMatrix(aspect))
	sh.SetMat4("view", g.camera.ViewMatrix())
	sh.SetVec3("viewPos", g.camera.Position)

	if !g.player.Dead && playerModel != nil {
		if a := g.player.Anim(); a != nil {
			for i, b := range a.BoneMatrices() {
				sh.SetMat4(boneUniform(i), b)
			}
		}
		sh.SetMat4("model", PlayerModelMatrix(g.player, g.config.PlayerScale))
		playerModel.Draw(sh)
	}

	if targetModel == nil {
		return
	}
	for _, t := range g.world.Targets {
		for i, b := range t.anim.BoneMatrices() {
			sh.SetMat4(boneUniform(i), b)
		}
		sh.SetMat4("model", TargetModelMatrix(t, g.player.Position))
		targetModel.Draw(sh)
	}
}
