// internal/dates/dates_test.go
package dates

import (
	"testing"
	"time"
)

func TestParsePubDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Mon, 05 Aug 2024 14:30:00 +0900", "2024-08-05 14:30:00", true},
		{"Mon, 5 Aug 2024 14:30:00 +0900", "2024-08-05 14:30:00", true},
		{"2024-08-05T14:30:00+09:00", "2024-08-05 14:30:00", true},
		{"2024-08-05", "2024-08-05 00:00:00", true},
		{"", "", false},
		{"날짜 아님", "", false},
	}

	for _, tc := range cases {
		got, ok := ParsePubDate(tc.in)
		if ok != tc.ok {
			t.Errorf("ParsePubDate(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && Format(got, StyleDateTime) != tc.want {
			t.Errorf("ParsePubDate(%q) = %q, want %q", tc.in, Format(got, StyleDateTime), tc.want)
		}
	}
}

func TestParseISO_TrailingZ(t *testing.T) {
	got, ok := ParseISO("2024-08-05T05:30:00Z")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if !got.Equal(time.Date(2024, 8, 5, 5, 30, 0, 0, time.UTC)) {
		t.Errorf("ParseISO = %v", got)
	}
}

func TestFindTextDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"입력 2024.08.05 14:30", "2024.08.05", true},
		{"등록일: 2024-8-5", "2024.08.05", true},
		{"2024/08/05 오후", "2024.08.05", true},
		{"기사 제목뿐", "", false},
	}

	for _, tc := range cases {
		got, ok := FindTextDate(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("FindTextDate(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFormat(t *testing.T) {
	ts := time.Date(2024, 8, 5, 14, 30, 45, 0, time.UTC)

	if got := Format(ts, StyleDateTime); got != "2024-08-05 14:30:45" {
		t.Errorf("StyleDateTime = %q", got)
	}
	if got := Format(ts, StyleDotted); got != "2024.08.05" {
		t.Errorf("StyleDotted = %q", got)
	}
}
