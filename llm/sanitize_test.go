package llm

import "testing"

func TestCleanText(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  hello  ", "hello"},
		{"keeps newlines and tabs", "line one\n\tline two", "line one\n\tline two"},
		{"strips control characters", "he\x00llo\x1bworld", "helloworld"},
		{"normalizes crlf", "line one\r\nline two", "line one\nline two"},
		{"bare carriage return", "line one\rline two", "line one\nline two"},
		{"drops replacement characters", "he�llo", "hello"},
		{"empty input", "", ""},
		{"unicode content preserved", "crème brûlée 知识", "crème brûlée 知识"},
	}
	for _, tc := range cases {
		if got := CleanText(tc.input); got != tc.want {
			t.Errorf("%s: CleanText(%q) = %q, want %q", tc.name, tc.input, got, tc.want)
		}
	}
}

func TestCleanTextIdempotent(t *testing.T) {
	input := "  hello\r\nworld\x07  "
	once := CleanText(input)
	twice := CleanText(once)
	if once != twice {
		t.Errorf("Expected idempotent transform, got %q then %q", once, twice)
	}
}
