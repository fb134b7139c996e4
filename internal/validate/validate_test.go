package validate

import (
	"strings"
	"testing"
)

func TestChoreTitle(t *testing.T) {
	if err := ChoreTitle("Make bed"); err != nil {
		t.Errorf("valid title rejected: %v", err)
	}
	if err := ChoreTitle(""); err == nil {
		t.Error("empty title accepted")
	}
	if err := ChoreTitle("   "); err == nil {
		t.Error("whitespace-only title accepted")
	}
	if err := ChoreTitle(strings.Repeat("a", 100)); err != nil {
		t.Errorf("100-char title rejected: %v", err)
	}
	if err := ChoreTitle(strings.Repeat("a", 101)); err == nil {
		t.Error("101-char title accepted")
	}
}

func TestReward(t *testing.T) {
	for _, r := range []int64{1, 500, 1_000_000} {
		if err := Reward(r); err != nil {
			t.Errorf("Reward(%d) rejected: %v", r, err)
		}
	}
	for _, r := range []int64{0, -5, 1_000_001} {
		if err := Reward(r); err == nil {
			t.Errorf("Reward(%d) accepted", r)
		}
	}
}

func TestUserName(t *testing.T) {
	if err := UserName("Ada"); err != nil {
		t.Errorf("valid name rejected: %v", err)
	}
	if err := UserName(" "); err == nil {
		t.Error("blank name accepted")
	}
	if err := UserName(strings.Repeat("n", 51)); err == nil {
		t.Error("51-char name accepted")
	}
}

func TestPIN(t *testing.T) {
	if err := PIN("0000"); err != nil {
		t.Errorf("valid PIN rejected: %v", err)
	}
	for _, bad := range []string{"", "123", "12345", "12a4", "１２３４"} {
		if err := PIN(bad); err == nil {
			t.Errorf("PIN(%q) accepted", bad)
		}
	}
}
