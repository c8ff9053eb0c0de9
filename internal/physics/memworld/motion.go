package memworld

import "github.com/san-kum/scenekit/internal/dynamo"

// motion is free rigid-body motion: state [x, y, angle, vx, vy, omega],
// control [ax, ay].
type motion struct{}

func (m *motion) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	var ax, ay float64
	if len(u) >= 2 {
		ax, ay = u[0], u[1]
	}
	return dynamo.State{x[3], x[4], x[5], ax, ay, 0}
}

func (m *motion) StateDim() int { return 6 }
