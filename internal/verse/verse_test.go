package verse

import (
	"math/rand"
	"testing"
)

func TestAllReturnsCopy(t *testing.T) {
	a := All()
	if len(a) != 12 {
		t.Fatalf("len(All()) = %d, want 12", len(a))
	}
	a[0].Text = "changed"
	if All()[0].Text == "changed" {
		t.Error("All() must return a copy, not the backing slice")
	}
}

func TestPickDeterministic(t *testing.T) {
	r1 := rand.New(rand.NewSource(7))
	r2 := rand.New(rand.NewSource(7))
	if Pick(r1) != Pick(r2) {
		t.Error("same seed should pick the same verse")
	}
}

func TestPickNilSource(t *testing.T) {
	v := Pick(nil)
	if v.Text == "" || v.Ref == "" {
		t.Errorf("Pick(nil) = %+v", v)
	}
}
