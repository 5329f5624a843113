package handlers

import "testing"

func TestProfileComplete(t *testing.T) {
	if !profileComplete("1 Main St", "Austin", "TX", "78701") {
		t.Fatal("expected a fully filled profile to be complete")
	}
	if profileComplete("", "Austin", "TX", "78701") {
		t.Fatal("expected missing address to be incomplete")
	}
	if profileComplete("1 Main St", "Austin", " ", "78701") {
		t.Fatal("expected whitespace state to be incomplete")
	}
	if profileComplete("1 Main St", "Austin", "TX", "") {
		t.Fatal("expected missing zip to be incomplete")
	}
}
