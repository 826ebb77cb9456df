package assist

import "testing"

func TestArbiter_EnterTearsDownPrevious(t *testing.T) {
	a := NewArbiter(nil)
	var torn []Mode
	for m := ModePopup; m < modeCount; m++ {
		m := m
		a.OnTeardown(m, func() { torn = append(torn, m) })
	}

	a.Enter(ModePopup)
	a.Enter(ModePopup)
	a.Enter(ModeGhosts)
	a.Enter(ModePlaceholder)
	a.Reset()

	want := []Mode{ModePopup, ModeGhosts, ModePlaceholder}
	if len(torn) != len(want) {
		t.Fatalf("torn down = %v, want %v", torn, want)
	}
	for i := range want {
		if torn[i] != want[i] {
			t.Errorf("torn[%d] = %s, want %s", i, torn[i], want[i])
		}
	}
	if a.Mode() != ModeNone {
		t.Errorf("Mode() = %s after Reset", a.Mode())
	}
}

func TestArbiter_LeaveOnlyActiveMode(t *testing.T) {
	a := NewArbiter(nil)
	a.Enter(ModeGhosts)
	if a.Leave(ModePopup) {
		t.Error("left a mode that was not active")
	}
	if !a.Is(ModeGhosts) {
		t.Errorf("Mode() = %s", a.Mode())
	}
	if !a.Leave(ModeGhosts) || a.Mode() != ModeNone {
		t.Error("Leave(ModeGhosts) did not return to none")
	}
	if a.Leave(ModeNone) {
		t.Error("Leave(ModeNone) reported a change")
	}
}

func TestArbiter_TeardownSeesModeInactive(t *testing.T) {
	a := NewArbiter(nil)
	left := true
	a.OnTeardown(ModePlaceholder, func() { left = a.Leave(ModePlaceholder) })
	a.Enter(ModePlaceholder)
	a.Enter(ModePopup)
	if left {
		t.Error("Leave inside a teardown should be a no-op")
	}
	if a.Mode() != ModePopup {
		t.Errorf("Mode() = %s", a.Mode())
	}
}
