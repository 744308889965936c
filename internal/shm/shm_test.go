package shm

import "testing"

func TestAllocZeroesMemory(t *testing.T) {
	b, err := Alloc(64)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	defer b.Free()

	for i, v := range b.Bytes() {
		if v != 0 {
			t.Fatalf("byte %d = %d, want 0", i, v)
		}
	}
}

func TestAllocRejectsNonPositiveSize(t *testing.T) {
	if _, err := Alloc(0); err == nil {
		t.Fatal("Alloc(0) should fail")
	}
	if _, err := Alloc(-1); err == nil {
		t.Fatal("Alloc(-1) should fail")
	}
}

func TestBytesAreWritableAndVisible(t *testing.T) {
	b, err := Alloc(8)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	defer b.Free()

	b.Bytes()[0] = 0xAB
	if got := b.Bytes()[0]; got != 0xAB {
		t.Fatalf("Bytes()[0] = %x, want 0xAB", got)
	}
}

func TestFreeIsIdempotent(t *testing.T) {
	b, err := Alloc(8)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if err := b.Free(); err != nil {
		t.Fatalf("first Free: %v", err)
	}
	if err := b.Free(); err != nil {
		t.Fatalf("second Free: %v", err)
	}
}
