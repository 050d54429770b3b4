package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUser_JSONHidesPasswordDigest(t *testing.T) {
	user := User{
		UserID:       1,
		Name:         "john",
		Email:        "john@example.com",
		PasswordHash: "$2a$10$secret-digest",
		Watchlist:    []WatchlistEntry{},
	}

	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := string(data)
	if strings.Contains(body, "secret-digest") {
		t.Error("password digest leaked into JSON output")
	}
	if strings.Contains(body, "password") {
		t.Error("password key must not appear in JSON output")
	}
	if !strings.Contains(body, `"email":"john@example.com"`) {
		t.Errorf("expected email in JSON output, got %s", body)
	}
}

func TestProfilePatch_Empty(t *testing.T) {
	if !(ProfilePatch{}).Empty() {
		t.Error("zero patch must report empty")
	}

	name := "johnny"
	if (ProfilePatch{Name: &name}).Empty() {
		t.Error("patch with a field must not report empty")
	}
}

func TestProfilePatch_AbsentVsEmptyString(t *testing.T) {
	var patch ProfilePatch
	if err := json.Unmarshal([]byte(`{"name":""}`), &patch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if patch.Name == nil {
		t.Error("explicit empty string must decode as present")
	}
	if patch.Email != nil {
		t.Error("absent field must decode as nil")
	}
}
