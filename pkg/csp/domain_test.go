package csp

import "testing"

func TestDomainFull(t *testing.T) {
	d := Full(5)
	if d.Size() != 5 {
		t.Fatalf("Size() = %d, want 5", d.Size())
	}
	for v := 1; v <= 5; v++ {
		if !d.Has(v) {
			t.Errorf("Has(%d) = false, want true", v)
		}
	}
	if d.Has(0) || d.Has(6) {
		t.Errorf("Has() out of range should be false")
	}
}

func TestDomainWithout(t *testing.T) {
	d := Full(3).Without(2)
	if d.Has(2) {
		t.Fatalf("Without(2) left 2 in the domain")
	}
	if d.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", d.Size())
	}
}

func TestDomainSingleton(t *testing.T) {
	d := Singleton(9, 4)
	if !d.IsSingleton() {
		t.Fatalf("IsSingleton() = false")
	}
	if d.Value() != 4 {
		t.Fatalf("Value() = %d, want 4", d.Value())
	}
}

func TestDomainIntersect(t *testing.T) {
	a := Full(5).Without(1).Without(2)
	b := Full(5).Without(4).Without(5)
	got := a.Intersect(b)
	want := []int{3}
	var have []int
	got.Each(func(v int) { have = append(have, v) })
	if len(have) != len(want) || have[0] != want[0] {
		t.Fatalf("Intersect() = %v, want %v", have, want)
	}
}

func TestDomainEmptyAfterRemovingAll(t *testing.T) {
	d := Singleton(3, 2).Without(2)
	if !d.IsEmpty() {
		t.Fatalf("IsEmpty() = false after removing the only value")
	}
}

func TestDomainEqual(t *testing.T) {
	a := Full(4).Without(3)
	b := Full(4).Without(3)
	if !a.Equal(b) {
		t.Fatalf("Equal() = false for identical domains")
	}
	if a.Equal(Full(4)) {
		t.Fatalf("Equal() = true for different domains")
	}
}
