package booking

import (
	"errors"
	"testing"
)

func TestTransitionLegalPaths(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		event   Event
		want    Status
		effects []SideEffect
	}{
		{"confirm pending", StatusPending, EventConfirm, StatusConfirmed, nil},
		{"check in confirmed", StatusConfirmed, EventCheckIn, StatusCheckedIn,
			[]SideEffect{EffectCreateCheckIn, EffectRoomOccupied}},
		{"check out checked in", StatusCheckedIn, EventCheckOut, StatusCheckedOut,
			[]SideEffect{EffectRecordCheckout, EffectRoomMaintenance, EffectCreateCleaningTask, EffectCreditLoyalty}},
		{"cancel pending", StatusPending, EventCancel, StatusCancelled, nil},
		{"cancel confirmed", StatusConfirmed, EventCancel, StatusCancelled, nil},
		{"no-show confirmed", StatusConfirmed, EventNoShow, StatusNoShow, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, effects, err := Transition(tt.from, tt.event)
			if err != nil {
				t.Fatalf("Transition(%s, %s) returned error: %v", tt.from, tt.event, err)
			}
			if got != tt.want {
				t.Errorf("next status = %s, want %s", got, tt.want)
			}
			if len(effects) != len(tt.effects) {
				t.Fatalf("effects = %v, want %v", effects, tt.effects)
			}
			for i := range effects {
				if effects[i] != tt.effects[i] {
					t.Errorf("effects[%d] = %s, want %s", i, effects[i], tt.effects[i])
				}
			}
		})
	}
}

func TestTransitionRejectsIllegalEvents(t *testing.T) {
	tests := []struct {
		name  string
		from  Status
		event Event
	}{
		{"check in pending", StatusPending, EventCheckIn},
		{"check out confirmed", StatusConfirmed, EventCheckOut},
		{"confirm checked in", StatusCheckedIn, EventConfirm},
		{"cancel checked in", StatusCheckedIn, EventCancel},
		{"no-show pending", StatusPending, EventNoShow},
		{"confirm checked out", StatusCheckedOut, EventConfirm},
		{"check in cancelled", StatusCancelled, EventCheckIn},
		{"check out no-show", StatusNoShow, EventCheckOut},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, effects, err := Transition(tt.from, tt.event)
			if err == nil {
				t.Fatalf("Transition(%s, %s) = %s, want error", tt.from, tt.event, got)
			}
			var te *TransitionError
			if !errors.As(err, &te) {
				t.Fatalf("error type = %T, want *TransitionError", err)
			}
			if te.From != tt.from || te.Event != tt.event {
				t.Errorf("TransitionError = {%s %s}, want {%s %s}", te.From, te.Event, tt.from, tt.event)
			}
			if got != tt.from {
				t.Errorf("status changed to %s on rejected event", got)
			}
			if effects != nil {
				t.Errorf("rejected event returned effects %v", effects)
			}
		})
	}
}

func TestTerminalStatusesAcceptNothing(t *testing.T) {
	terminals := []Status{StatusCheckedOut, StatusCancelled, StatusNoShow}
	events := []Event{EventConfirm, EventCheckIn, EventCheckOut, EventCancel, EventNoShow}
	for _, s := range terminals {
		if !s.Terminal() {
			t.Errorf("%s.Terminal() = false, want true", s)
		}
		for _, ev := range events {
			if _, _, err := Transition(s, ev); err == nil {
				t.Errorf("Transition(%s, %s) succeeded, want error", s, ev)
			}
		}
	}
}

// Cancelling a future booking must not carry any room effect: the
// room's current status can belong to a different stay that is
// physically in the room (guest A checked in, guest B cancels a
// booking for next week on the same room).
func TestCancelAndNoShowCarryNoRoomEffects(t *testing.T) {
	tests := []struct {
		from  Status
		event Event
	}{
		{StatusPending, EventCancel},
		{StatusConfirmed, EventCancel},
		{StatusConfirmed, EventNoShow},
	}
	for _, tt := range tests {
		_, effects, err := Transition(tt.from, tt.event)
		if err != nil {
			t.Fatalf("Transition(%s, %s) returned error: %v", tt.from, tt.event, err)
		}
		if len(effects) != 0 {
			t.Errorf("Transition(%s, %s) effects = %v, want none", tt.from, tt.event, effects)
		}
	}
}

func TestRoomAssignable(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusCheckedIn, false},
		{StatusCheckedOut, false},
		{StatusCancelled, false},
		{StatusNoShow, false},
	}
	for _, tt := range tests {
		if got := tt.status.RoomAssignable(); got != tt.want {
			t.Errorf("%s.RoomAssignable() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestSettled(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusCheckedOut, true},
		{StatusCancelled, true},
		{StatusNoShow, false},
		{StatusCheckedIn, false},
		{StatusPending, false},
		{StatusConfirmed, false},
	}
	for _, tt := range tests {
		if got := tt.status.Settled(); got != tt.want {
			t.Errorf("%s.Settled() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestSettledStatuses(t *testing.T) {
	got := SettledStatuses()
	want := []Status{StatusCheckedOut, StatusCancelled}
	if len(got) != len(want) {
		t.Fatalf("SettledStatuses() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SettledStatuses()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
