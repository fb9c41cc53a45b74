package domain

import "testing"

func TestCanTransition(t *testing.T) {
	all := []UserStatus{
		StatusPendingVerification, StatusActive, StatusInactive, StatusSuspended, StatusClosed,
	}
	allowed := map[UserStatus][]UserStatus{
		StatusPendingVerification: {StatusActive, StatusSuspended, StatusClosed},
		StatusActive:              {StatusInactive, StatusSuspended, StatusClosed},
		StatusInactive:            {StatusActive, StatusClosed},
		StatusSuspended:           {StatusActive, StatusClosed},
		StatusClosed:              {},
	}

	for _, from := range all {
		for _, to := range all {
			want := from == to
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestCanTransition_ClosedIsTerminal(t *testing.T) {
	for _, to := range []UserStatus{StatusPendingVerification, StatusActive, StatusInactive, StatusSuspended} {
		if CanTransition(StatusClosed, to) {
			t.Errorf("CLOSED must not transition to %s", to)
		}
	}
	if !CanTransition(StatusClosed, StatusClosed) {
		t.Error("self-transition on CLOSED should be a no-op success")
	}
}

func TestUserStatusValid(t *testing.T) {
	for _, s := range []UserStatus{StatusPendingVerification, StatusActive, StatusInactive, StatusSuspended, StatusClosed} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if UserStatus("DELETED").Valid() {
		t.Error("unknown status should not be valid")
	}
}
