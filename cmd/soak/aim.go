package main

import (
	"math"

	"grannyarena/game"
)

// interceptIterations bounds the fixed-point refinement in leadTarget
const interceptIterations = 5

// leadTarget returns where to aim so a projectile fired from shooter at
// speed meets a target at pos moving with vel
func leadTarget(shooter, pos, vel game.Vec3, speed float64) game.Vec3 {
	if vel.Len() < 0.01 || speed <= 0 {
		return pos
	}
	distance := game.Distance(shooter, pos)
	if distance < 1.0 {
		return pos
	}

	// Find t such that |pos + vel*t - shooter| = speed*t
	t := distance / speed
	for range interceptIterations {
		predicted := pos.Add(vel.Scale(t))
		next := game.Distance(shooter, predicted) / speed
		if math.Abs(next-t) < 0.001 {
			break
		}
		t = next
	}
	return pos.Add(vel.Scale(t))
}

// targetVelocity mirrors Target.Steer: straight at the player until the
// separation distance is reached
func targetVelocity(t *game.Target, player game.Vec3, minSeparation float64) game.Vec3 {
	d := player.Sub(t.Position)
	if d.Len() <= minSeparation {
		return game.Vec3{}
	}
	return d.Normalize().Scale(t.Speed)
}

// rotateTowards moves current towards target degrees by at most maxStep,
// taking the short way round
func rotateTowards(current, target, maxStep float64) float64 {
	diff := math.Remainder(target-current, 360)
	if math.Abs(diff) > maxStep {
		diff = math.Copysign(maxStep, diff)
	}
	return current + diff
}
