package bot

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitMessageShortTextIsOneChunk(t *testing.T) {
	chunks := splitMessage("hello world", 2000)
	if len(chunks) != 1 || chunks[0] != "hello world" {
		t.Errorf("chunks = %v, want the text untouched", chunks)
	}
}

func TestSplitMessageEmptyText(t *testing.T) {
	if chunks := splitMessage("   \n  ", 2000); chunks != nil {
		t.Errorf("chunks = %v, want nil for whitespace-only input", chunks)
	}
}

func TestSplitMessageRespectsLimit(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 120; i++ {
		b.WriteString("This sentence is a filler argument that pads the reply out. ")
	}
	text := b.String()

	chunks := splitMessage(text, 2000)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks for a %d-char text, want at least 2", len(chunks), len(text))
	}
	for i, chunk := range chunks {
		if len(chunk) > 2000 {
			t.Errorf("chunk %d has %d chars, want at most 2000", i, len(chunk))
		}
		if chunk == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}

	// Nothing is lost beyond boundary whitespace.
	joined := strings.Join(chunks, " ")
	if strings.Join(strings.Fields(joined), " ") != strings.Join(strings.Fields(text), " ") {
		t.Error("chunked text does not reassemble into the original words")
	}
}

func TestSplitMessagePrefersParagraphBreak(t *testing.T) {
	text := "First paragraph stays whole.\n\nSecond paragraph follows after the break and keeps going for a while."

	chunks := splitMessage(text, 60)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(chunks))
	}
	if chunks[0] != "First paragraph stays whole." {
		t.Errorf("first chunk = %q, want the full first paragraph", chunks[0])
	}
}

func TestSplitMessagePrefersSentenceEnd(t *testing.T) {
	text := "A short claim stands here. Another short claim follows it closely here too."

	chunks := splitMessage(text, 40)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], ".") {
		t.Errorf("first chunk = %q, want a cut at the sentence end", chunks[0])
	}
}

func TestSplitMessageFallsBackToWordBreak(t *testing.T) {
	text := "wordone wordtwo wordthree wordfour wordfive"

	chunks := splitMessage(text, 20)
	for i, chunk := range chunks {
		if strings.Contains(chunk, "  ") {
			t.Errorf("chunk %d = %q contains doubled spaces", i, chunk)
		}
		if len(chunk) > 20 {
			t.Errorf("chunk %d has %d chars, want at most 20", i, len(chunk))
		}
	}
	if chunks[0] != "wordone wordtwo" {
		t.Errorf("first chunk = %q, want a cut at the last word break", chunks[0])
	}
}

func TestSplitMessageKeepsRuneBoundaries(t *testing.T) {
	// Japanese text has no spaces, so the hard-cut path is the norm; it
	// must never slice a multibyte character in half.
	text := strings.Repeat("あ", 1500)

	chunks := splitMessage(text, 2000)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks for a %d-byte text, want at least 2", len(chunks), len(text))
	}
	var total int
	for i, chunk := range chunks {
		if !utf8.ValidString(chunk) {
			t.Errorf("chunk %d is not valid UTF-8", i)
		}
		if len(chunk) > 2000 {
			t.Errorf("chunk %d has %d bytes, want at most 2000", i, len(chunk))
		}
		total += utf8.RuneCountInString(chunk)
	}
	if total != 1500 {
		t.Errorf("chunks carry %d runes, want all 1500", total)
	}
}

func TestSplitMessageCutsAtFullWidthSentenceEnd(t *testing.T) {
	text := "これが私の主張です。" + strings.Repeat("あ", 60)

	chunks := splitMessage(text, 40)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(chunks))
	}
	if chunks[0] != "これが私の主張です。" {
		t.Errorf("first chunk = %q, want a cut after the full-width period", chunks[0])
	}
	for i, chunk := range chunks {
		if !utf8.ValidString(chunk) {
			t.Errorf("chunk %d is not valid UTF-8", i)
		}
	}
}

func TestSplitMessageHardCutsUnbrokenText(t *testing.T) {
	text := strings.Repeat("x", 45)

	chunks := splitMessage(text, 20)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	if len(chunks[0]) != 20 || len(chunks[1]) != 20 || len(chunks[2]) != 5 {
		t.Errorf("chunk lengths = %d/%d/%d, want 20/20/5", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
}
