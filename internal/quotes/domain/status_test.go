package domain

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusDraft, StatusAnalyzing, true},
		{StatusDraft, StatusPending, true},
		{StatusDraft, StatusApproved, false},
		{StatusAnalyzing, StatusPending, true},
		{StatusAnalyzing, StatusApproved, false},
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusExpired, true},
		{StatusPending, StatusDraft, false},
		{StatusApproved, StatusExpired, true},
		{StatusApproved, StatusRejected, false},
		{StatusRejected, StatusPending, false},
		{StatusExpired, StatusPending, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestIsEditable(t *testing.T) {
	editable := map[Status]bool{
		StatusDraft:     true,
		StatusAnalyzing: false,
		StatusPending:   true,
		StatusApproved:  false,
		StatusRejected:  false,
		StatusExpired:   false,
	}
	for status, want := range editable {
		if got := IsEditable(status); got != want {
			t.Fatalf("IsEditable(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []Status{StatusRejected, StatusExpired} {
		if !IsTerminal(s) {
			t.Fatalf("expected %s to be terminal", s)
		}
	}
	for _, s := range []Status{StatusDraft, StatusAnalyzing, StatusPending, StatusApproved} {
		if IsTerminal(s) {
			t.Fatalf("expected %s not to be terminal", s)
		}
	}
}

func TestIsValid(t *testing.T) {
	if IsValid("archived") {
		t.Fatal("archived must not be a valid status")
	}
	if !IsValid(StatusDraft) {
		t.Fatal("draft must be a valid status")
	}
}
