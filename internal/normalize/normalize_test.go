// internal/normalize/normalize_test.go
package normalize

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBody_StripsBoilerplate(t *testing.T) {
	n := New(20, 2000, nil)

	in := "기사 본문입니다. 정부는 오늘 새로운 정책을 발표했다. " +
		"저작권자 ⓒ 어느신문, 무단 전재 및 재배포 금지 " +
		"reporter@example.co.kr"

	out, ok := n.Body(in)
	if !ok {
		t.Fatalf("expected body above the floor, got rejection: %q", out)
	}
	for _, banned := range []string{"저작권자", "무단", "재배포", "@"} {
		if strings.Contains(out, banned) {
			t.Errorf("boilerplate %q survived normalization: %q", banned, out)
		}
	}
	if !strings.Contains(out, "새로운 정책을 발표했다") {
		t.Errorf("article prose was lost: %q", out)
	}
}

func TestBody_CollapsesWhitespace(t *testing.T) {
	n := New(5, 2000, nil)

	out, ok := n.Body("첫째   문장.\n\n\t둘째 문장.")
	if !ok {
		t.Fatalf("unexpected rejection: %q", out)
	}
	if out != "첫째 문장. 둘째 문장." {
		t.Errorf("whitespace not collapsed: %q", out)
	}
}

func TestBody_RejectsBelowFloor(t *testing.T) {
	n := New(20, 2000, nil)

	out, ok := n.Body("짧은 글")
	if ok {
		t.Errorf("expected rejection below the floor, got %q", out)
	}
}

func TestBody_HardCapIsRuneSafe(t *testing.T) {
	n := New(5, 50, nil)

	out, ok := n.Body(strings.Repeat("가나다라마바사아자차", 20))
	if !ok {
		t.Fatal("unexpected rejection")
	}
	if !strings.HasSuffix(out, Ellipsis) {
		t.Errorf("truncated body missing ellipsis: %q", out)
	}
	if !utf8.ValidString(out) {
		t.Errorf("truncation split a rune: %q", out)
	}
	if utf8.RuneCountInString(out) > 50+len(Ellipsis) {
		t.Errorf("body exceeds hard cap: %d runes", utf8.RuneCountInString(out))
	}
}

func TestDecodeEntities(t *testing.T) {
	got := DecodeEntities("<![CDATA[경제 &amp; 사회]]>")
	if got != "경제 & 사회" {
		t.Errorf("DecodeEntities = %q", got)
	}
}

func TestStripCDATA_KeepsPlainText(t *testing.T) {
	if got := StripCDATA("평범한 제목"); got != "평범한 제목" {
		t.Errorf("StripCDATA altered plain text: %q", got)
	}
}

func TestIsValidKoreanName(t *testing.T) {
	cases := []struct {
		name  string
		extra []string
		want  bool
	}{
		{name: "홍길동", want: true},
		{name: "남궁민수", want: true},
		{name: "김", want: false},
		{name: "아주아주긴이름", want: false},
		{name: "John", want: false},
		{name: "편집부", want: false},
		{name: "연합뉴스", want: false},
		{name: "홍길동", extra: []string{"홍길동"}, want: false},
		{name: "", want: false},
	}

	for _, tc := range cases {
		if got := IsValidKoreanName(tc.name, tc.extra...); got != tc.want {
			t.Errorf("IsValidKoreanName(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsBoilerplateParagraph(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"정부는 오늘 새로운 정책을 발표했다.", false},
		{"▶ 관련기사 보기", true},
		{"ⓒ 어느신문. 무단 전재 금지", true},
		{"news@example.com", true},
		{"", true},
		{"어느신문을 구독하세요", true},
	}

	for _, tc := range cases {
		if got := IsBoilerplateParagraph(tc.text, "어느신문"); got != tc.want {
			t.Errorf("IsBoilerplateParagraph(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestIsBoilerplateParagraph_LongOutletMention(t *testing.T) {
	text := "어느신문이 단독 입수한 문건에 따르면 해당 기관은 지난해부터 관련 사업을 추진해 온 것으로 확인됐다."
	if IsBoilerplateParagraph(text, "어느신문") {
		t.Error("long prose mentioning the outlet should not be boilerplate")
	}
}
