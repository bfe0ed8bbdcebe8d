package core

import "testing"

func TestParseAction(t *testing.T) {
	for a := ActionLeft; a <= ActionChoice3; a++ {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = %v, %v, expected %v", a.String(), got, ok, a)
		}
	}
	if _, ok := ParseAction("Jump"); ok {
		t.Error("ParseAction(Jump) succeeded")
	}
	if _, ok := ParseAction("None"); ok {
		t.Error("ParseAction(None) succeeded")
	}
}

func TestInputFrameList(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionChoice2)
	f.Set(ActionLeft)
	f.Set(ActionReload)

	got := f.List()
	want := []Action{ActionLeft, ActionReload, ActionChoice2}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %v, expected %v", i, got[i], want[i])
		}
	}

	c := f.Clone()
	f.Clear()
	if f.Has(ActionLeft) || !c.Has(ActionLeft) {
		t.Error("Clone() shares state with the original frame")
	}
}
