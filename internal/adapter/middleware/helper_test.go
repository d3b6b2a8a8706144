package middleware

import (
	"testing"
	"time"
)

func TestValidReqID(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", true},                // hex32
		{"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", true},                // case-folded
		{"  aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa  ", true},            // trimmed
		{"6f1c1c2e-9f1b-4a7c-8c3d-1a2b3c4d5e6f", true},            // UUID v4
		{"6f1c1c2e-9f1b-0a7c-8c3d-1a2b3c4d5e6f", false},           // bad version nibble
		{"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz", false},               // not hex
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},                // 31 chars
		{"", false},
	}
	for _, tc := range cases {
		if got := validReqID(tc.in); got != tc.want {
			t.Errorf("validReqID(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseAxRequestAt(t *testing.T) {
	t.Run("epoch seconds", func(t *testing.T) {
		got, err := parseAxRequestAt("1736123456")
		if err != nil {
			t.Fatalf("err = %v", err)
		}
		if got.Unix() != 1736123456 {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("epoch milliseconds", func(t *testing.T) {
		got, err := parseAxRequestAt("1736123456789")
		if err != nil {
			t.Fatalf("err = %v", err)
		}
		if got.UnixMilli() != 1736123456789 {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("rfc3339 with offset", func(t *testing.T) {
		got, err := parseAxRequestAt("2025-09-05T10:00:00+07:00")
		if err != nil {
			t.Fatalf("err = %v", err)
		}
		want := time.Date(2025, 9, 5, 3, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("rfc3339 zulu nano", func(t *testing.T) {
		if _, err := parseAxRequestAt("2025-09-05T03:00:00.123456789Z"); err != nil {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("naive local rejected", func(t *testing.T) {
		if _, err := parseAxRequestAt("2025-09-05T10:00:00"); err == nil {
			t.Fatal("expected error for timestamp without timezone")
		}
	})

	t.Run("empty rejected", func(t *testing.T) {
		if _, err := parseAxRequestAt("   "); err == nil {
			t.Fatal("expected error for empty header")
		}
	})
}

func TestBuildKey(t *testing.T) {
	got := buildKey("POST", "/loans/:loan_number/approve", "42", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	want := "idemp:otsc:post:/loans/:loan_number/approve:42:aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	if got != want {
		t.Fatalf("buildKey = %q, want %q", got, want)
	}
}
