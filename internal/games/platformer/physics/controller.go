package physics

// Controller integrates input, gravity and friction into actor velocities.
// Every constant is per tick; the simulation assumes a fixed tick rate.
type Controller struct {
	tuning Tuning
}

// NewController creates a controller with the given tuning.
func NewController(t Tuning) *Controller {
	return &Controller{tuning: t}
}

// Step updates the actor's velocities for one tick. tileSize caps the fall
// speed so the actor can never pass through a whole tile in one tick.
func (c *Controller) Step(a *Actor, in Input, tileSize float64) {
	t := c.tuning

	peak := t.RunPeak
	if in.Sprint {
		peak = t.SprintPeak
	}

	if in.Left {
		if a.Vel >= -peak+t.Acceleration {
			a.Vel -= t.Acceleration
		} else {
			a.Vel = -peak
		}
	}
	if in.Right {
		if a.Vel <= peak-t.Acceleration {
			a.Vel += t.Acceleration
		} else {
			a.Vel = peak
		}
	}
	if !in.Left && !in.Right {
		a.Vel = applyFriction(a.Vel, t.Acceleration)
	}

	// Grounded still holds the previous tick's collision result here.
	if in.Jump && a.Grounded {
		a.Grav = t.JumpImpulse
	}

	a.Grav -= t.Gravity
	if a.Grav < -tileSize {
		a.Grav = -tileSize
	}
}

// applyFriction moves v toward zero by rate and stops exactly at zero.
func applyFriction(v, rate float64) float64 {
	switch {
	case v > 0:
		return max(v-rate, 0)
	case v < 0:
		return min(v+rate, 0)
	default:
		return 0
	}
}
