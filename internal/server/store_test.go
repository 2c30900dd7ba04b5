package server

import (
	"errors"
	"testing"

	"votelyst/internal/db"
)

func TestCreatePollRoundTrip(t *testing.T) {
	store := newTestStore(t)
	owner := mustRegister(t, store, "owner@example.com")

	created, err := store.CreatePoll(&owner.ID, "  Best color?  ", "pick one", []string{" Red ", "Blue", "Green"}, false)
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}
	if created.Question != "Best color?" {
		t.Fatalf("expected trimmed question, got %q", created.Question)
	}

	fetched, err := store.GetPoll(created.ID)
	if err != nil {
		t.Fatalf("get poll: %v", err)
	}
	if len(fetched.Options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(fetched.Options))
	}
	want := map[string]bool{"Red": false, "Blue": false, "Green": false}
	for _, option := range fetched.Options {
		if _, ok := want[option.OptionText]; !ok {
			t.Fatalf("unexpected option text %q", option.OptionText)
		}
		want[option.OptionText] = true
	}
	for text, seen := range want {
		if !seen {
			t.Fatalf("option %q missing from fetched poll", text)
		}
	}
}

func TestCreatePollValidation(t *testing.T) {
	store := newTestStore(t)
	owner := mustRegister(t, store, "owner@example.com")

	cases := []struct {
		name          string
		ownerID       *string
		question      string
		options       []string
		requiresLogin bool
	}{
		{"empty question", &owner.ID, "   ", []string{"A", "B"}, false},
		{"one option", &owner.ID, "Q?", []string{"A"}, false},
		{"options collapse to one after trim", &owner.ID, "Q?", []string{"A", "  ", ""}, false},
		{"duplicate options", &owner.ID, "Q?", []string{"A", "A"}, false},
		{"duplicate after trim", &owner.ID, "Q?", []string{"A", " A "}, false},
		{"private poll without owner", nil, "Q?", []string{"A", "B"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.CreatePoll(tc.ownerID, tc.question, "", tc.options, tc.requiresLogin)
			if !IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreatePollCaseSensitiveOptions(t *testing.T) {
	store := newTestStore(t)
	// Comparison is trim-only: "red" and "Red" are distinct options.
	poll := mustCreatePoll(t, store, nil, false, "red", "Red")
	if len(poll.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(poll.Options))
	}
}

func TestGetPollNotFound(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.GetPoll("no-such-poll"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePollReconciliation(t *testing.T) {
	store := newTestStore(t)
	owner := mustRegister(t, store, "owner@example.com")
	poll, err := store.CreatePoll(&owner.ID, "Q?", "", []string{"x", "y"}, false)
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}
	var optionA, optionB string
	for _, option := range poll.Options {
		switch option.OptionText {
		case "x":
			optionA = option.ID
		case "y":
			optionB = option.ID
		}
	}

	updated, err := store.UpdatePoll(poll.ID, "Q?", "", []OptionInput{
		{ID: optionA, Text: "x2"},
		{Text: "z"},
	}, false)
	if err != nil {
		t.Fatalf("update poll: %v", err)
	}
	if len(updated.Options) != 2 {
		t.Fatalf("expected 2 options after reconciliation, got %d", len(updated.Options))
	}
	texts := make(map[string]string, 2)
	for _, option := range updated.Options {
		texts[option.OptionText] = option.ID
	}
	if id, ok := texts["x2"]; !ok || id != optionA {
		t.Fatalf("expected option %s updated in place to x2, got %v", optionA, texts)
	}
	if _, ok := texts["z"]; !ok {
		t.Fatalf("expected new option z, got %v", texts)
	}
	for _, option := range updated.Options {
		if option.ID == optionB {
			t.Fatalf("expected option %s deleted", optionB)
		}
	}
}

func TestUpdatePollSwapOptionTexts(t *testing.T) {
	store := newTestStore(t)
	owner := mustRegister(t, store, "owner@example.com")
	poll, err := store.CreatePoll(&owner.ID, "Q?", "", []string{"x", "y"}, false)
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}
	var optionA, optionB string
	for _, option := range poll.Options {
		switch option.OptionText {
		case "x":
			optionA = option.ID
		case "y":
			optionB = option.ID
		}
	}

	// Exchanging the texts of two surviving options keeps both ids and is a
	// valid reconciliation even though each text transiently matches the
	// other row's old value.
	updated, err := store.UpdatePoll(poll.ID, "Q?", "", []OptionInput{
		{ID: optionA, Text: "y"},
		{ID: optionB, Text: "x"},
	}, false)
	if err != nil {
		t.Fatalf("update poll: %v", err)
	}
	if len(updated.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(updated.Options))
	}
	for _, option := range updated.Options {
		switch option.ID {
		case optionA:
			if option.OptionText != "y" {
				t.Fatalf("expected option %s to read y, got %q", optionA, option.OptionText)
			}
		case optionB:
			if option.OptionText != "x" {
				t.Fatalf("expected option %s to read x, got %q", optionB, option.OptionText)
			}
		default:
			t.Fatalf("unexpected option id %s", option.ID)
		}
	}
}

func TestUpdatePollStaleIDBecomesNew(t *testing.T) {
	store := newTestStore(t)
	owner := mustRegister(t, store, "owner@example.com")
	poll := mustCreatePoll(t, store, &owner.ID, false, "a", "b")

	updated, err := store.UpdatePoll(poll.ID, "Q?", "", []OptionInput{
		{ID: "stale-id-from-another-poll", Text: "c"},
		{Text: "d"},
	}, false)
	if err != nil {
		t.Fatalf("update poll: %v", err)
	}
	if len(updated.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(updated.Options))
	}
	for _, option := range updated.Options {
		if option.ID == "stale-id-from-another-poll" {
			t.Fatal("stale id should have been discarded")
		}
		if option.OptionText != "c" && option.OptionText != "d" {
			t.Fatalf("unexpected option %q", option.OptionText)
		}
	}
}

func TestUpdatePollPrivateNeedsOwner(t *testing.T) {
	store := newTestStore(t)
	poll := mustCreatePoll(t, store, nil, false)

	_, err := store.UpdatePoll(poll.ID, "Q?", "", []OptionInput{{Text: "a"}, {Text: "b"}}, true)
	if !IsValidation(err) {
		t.Fatalf("expected validation error for ownerless private poll, got %v", err)
	}
}

func TestDeletePollCascades(t *testing.T) {
	store := newTestStore(t)
	owner := mustRegister(t, store, "owner@example.com")
	poll := mustCreatePoll(t, store, &owner.ID, false)
	if _, err := store.CastVote(poll.ID, poll.Options[0].ID, AuthenticatedVoter(owner.ID)); err != nil {
		t.Fatalf("cast vote: %v", err)
	}

	if err := store.DeletePoll(poll.ID); err != nil {
		t.Fatalf("delete poll: %v", err)
	}
	if _, err := store.GetPoll(poll.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected poll gone, got %v", err)
	}
	var options, votes int64
	store.conn.Model(&db.PollOption{}).Where("poll_id = ?", poll.ID).Count(&options)
	store.conn.Model(&db.Vote{}).Where("poll_id = ?", poll.ID).Count(&votes)
	if options != 0 || votes != 0 {
		t.Fatalf("expected cascade delete, still have %d options and %d votes", options, votes)
	}

	if err := store.DeletePoll(poll.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
