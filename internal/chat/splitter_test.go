package chat

import "testing"

func TestSplitReplyNoTrigger(t *testing.T) {
	// without "Score:" or "Rating:" the input passes through untouched,
	// even when a delimiter is present
	inputs := []string{
		"Try again with more detail.",
		"Some text --- with a delimiter but no trigger",
		"",
	}
	for _, input := range inputs {
		main, score := SplitReply(input)
		if main != input || score != "" {
			t.Fatalf("SplitReply(%q): expected identity, got (%q, %q)", input, main, score)
		}
	}
}

func TestSplitReplyWithScoreBlock(t *testing.T) {
	raw := "Good answer overall.\n---\nScore: 7/10, Rating: Strong"

	main, score := SplitReply(raw)
	if main != "Good answer overall." {
		t.Fatalf("unexpected main content: %q", main)
	}
	if score != "Score: 7/10, Rating: Strong" {
		t.Fatalf("unexpected score content: %q", score)
	}
}

func TestSplitReplyTrimsWhitespace(t *testing.T) {
	main, score := SplitReply("  The answer.  ---  Score: 9/10  ")
	if main != "The answer." || score != "Score: 9/10" {
		t.Fatalf("expected trimmed halves, got (%q, %q)", main, score)
	}
}

func TestSplitReplyTriggerWithoutDelimiter(t *testing.T) {
	raw := "Score: 8/10 but no delimiter anywhere"

	main, score := SplitReply(raw)
	if main != raw || score != "" {
		t.Fatalf("expected degradation to full text, got (%q, %q)", main, score)
	}
}

func TestSplitReplyMultipleDelimiters(t *testing.T) {
	// the score segment is the text between the first and second delimiter
	main, score := SplitReply("Answer---Score: 5/10---trailing notes")
	if main != "Answer" {
		t.Fatalf("unexpected main content: %q", main)
	}
	if score != "Score: 5/10" {
		t.Fatalf("unexpected score content: %q", score)
	}
}

func TestSplitReplyRatingTrigger(t *testing.T) {
	main, score := SplitReply("Solid reasoning.\n---\nRating: Excellent")
	if main != "Solid reasoning." || score != "Rating: Excellent" {
		t.Fatalf("unexpected split: (%q, %q)", main, score)
	}
}
