package oopz

import (
	"errors"
	"strings"
	"testing"
)

func TestDescribeExtension(t *testing.T) {
	text, err := Describe[MyNode]()
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	for _, want := range []string{
		"extension of",
		"depth 3",
		"load",
		"relabel",
		"Object (root handle)",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("describe output misses %q:\n%s", want, text)
		}
	}
}

func TestDescribeRoot(t *testing.T) {
	text, err := Describe[Object]()
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if !strings.Contains(text, "(root)") || !strings.Contains(text, "depth 0") {
		t.Fatalf("unexpected root description:\n%s", text)
	}
	if strings.Contains(text, "upcast to") {
		t.Fatalf("a root has nothing to upcast to:\n%s", text)
	}
}

func TestDescribeRejectsNonClasses(t *testing.T) {
	_, err := Describe[int]()
	if !errors.Is(err, ErrNotAClass) {
		t.Fatalf("expected ErrNotAClass, got %v", err)
	}
}
