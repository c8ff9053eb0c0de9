package physics

import "testing"

func TestUserDataRoundTrip(t *testing.T) {
	ud := UserDataFromID(42)
	if ud.ID() != 42 || ud.Hi != 0 {
		t.Errorf("unexpected user data %+v", ud)
	}
}

func TestParseKinds(t *testing.T) {
	if k, err := ParseBodyKind("static"); err != nil || k != Static {
		t.Errorf("ParseBodyKind(static) = %v, %v", k, err)
	}
	if k, err := ParseBodyKind(""); err != nil || k != Dynamic {
		t.Errorf("empty body kind should default to dynamic, got %v, %v", k, err)
	}
	if _, err := ParseBodyKind("floating"); err == nil {
		t.Error("expected error for unknown body kind")
	}
	if k, err := ParseShapeKind("box"); err != nil || k != Box {
		t.Errorf("ParseShapeKind(box) = %v, %v", k, err)
	}
	if _, err := ParseShapeKind("hexagon"); err == nil {
		t.Error("expected error for unknown shape")
	}
	if k, err := ParseJointKind("spring"); err != nil || k != SpringJoint {
		t.Errorf("ParseJointKind(spring) = %v, %v", k, err)
	}
	if _, err := ParseJointKind("weld"); err == nil {
		t.Error("expected error for unknown joint kind")
	}
}

func TestForceThreshold(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{0, 0, 0},
		{5, 0, 5},
		{0, 3, 3},
		{5, 3, 3},
		{-1, 2, 2},
	}
	for _, tt := range tests {
		got := ForceThreshold(ColliderDesc{ContactForceThreshold: tt.a}, ColliderDesc{ContactForceThreshold: tt.b})
		if got != tt.want {
			t.Errorf("ForceThreshold(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestBoundingRadius(t *testing.T) {
	box := ColliderDesc{Shape: Box, Width: 6, Height: 8}
	if got := box.BoundingRadius(); got != 5 {
		t.Errorf("box bounding radius = %v, want 5", got)
	}
	seg := ColliderDesc{Shape: Segment, A: Vec2{-2, 0}, B: Vec2{2, 0}, Radius: 0.5}
	if got := seg.BoundingRadius(); got != 2.5 {
		t.Errorf("segment bounding radius = %v, want 2.5", got)
	}
}
