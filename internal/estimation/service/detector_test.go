package service

import (
	"reflect"
	"testing"
)

func TestDetectWorkTypes_ExplicitOverridesDescription(t *testing.T) {
	got := DetectWorkTypes("we need painting, tiling and a whole new kitchen", []string{"plumbing"})
	want := []string{"plumbing"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDetectWorkTypes_ExplicitDeduplicatesKeepingOrder(t *testing.T) {
	got := DetectWorkTypes("", []string{"tiling", "plumbing", "tiling"})
	want := []string{"tiling", "plumbing"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDetectWorkTypes_KeywordMatching(t *testing.T) {
	cases := []struct {
		description string
		want        []string
	}{
		{"The bathroom needs new tiles and the shower leaks", []string{"plumbing", "tiling", "bathroom"}},
		{"Repaint the ceiling and fix two wall outlets", []string{"painting", "electrical"}},
		{"LAMINATE FLOOR in the hallway", []string{"flooring"}},
		{"just a general question", nil},
		{"", nil},
	}
	for _, tc := range cases {
		got := DetectWorkTypes(tc.description, nil)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("description %q: expected %v, got %v", tc.description, tc.want, got)
		}
	}
}

func TestDetectWorkTypes_CategoryListedOncePerMatch(t *testing.T) {
	got := DetectWorkTypes("leaking pipe under the sink, drain is blocked, replace the faucet", nil)
	want := []string{"plumbing"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected one plumbing entry, got %v", got)
	}
}
