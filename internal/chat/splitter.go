package chat

import "strings"

// scoreDelimiter separates the main reply from a trailing score block.
const scoreDelimiter = "---"

// SplitReply divides a raw model reply into main content and an optional
// score/feedback segment. The reply is only split when it contains one of
// the trigger substrings "Score:" or "Rating:" and a "---" delimiter; the
// score segment is the text between the first delimiter and the next one,
// if any. In every other case the whole reply is returned as main content.
//
// This is a best-effort heuristic over free-form model output, not a parse:
// it never fails, it only degrades to "no score segment found". Callers must
// persist the raw reply, not the split halves, so no information is lost.
func SplitReply(raw string) (main, score string) {
	if !strings.Contains(raw, "Score:") && !strings.Contains(raw, "Rating:") {
		return raw, ""
	}

	parts := strings.Split(raw, scoreDelimiter)
	if len(parts) < 2 {
		return raw, ""
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}
