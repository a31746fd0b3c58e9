package bot

import (
	"regexp"
	"strings"
)

var (
	triggerPhrasePattern = regexp.MustCompile(`(?i)^(?:debate me(?: on| about)?|fight me on|argue with me about)\s+(.+)$`)
	mentionPattern       = regexp.MustCompile(`<@!?(\d+)>`)
)

// parseTrigger extracts a debate subject from a channel message. A debate
// starts on a fixed imperative phrase or on a bot mention with trailing text.
func parseTrigger(content, botUserID string, mentionsBot bool) (string, bool) {
	trimmed := strings.TrimSpace(content)
	if m := triggerPhrasePattern.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if !mentionsBot {
		return "", false
	}

	subject := strings.TrimSpace(stripMentions(trimmed, botUserID))
	if subject == "" {
		return "", false
	}
	return subject, true
}

func stripMentions(content, botUserID string) string {
	return mentionPattern.ReplaceAllStringFunc(content, func(mention string) string {
		m := mentionPattern.FindStringSubmatch(mention)
		if len(m) == 2 && m[1] == botUserID {
			return ""
		}
		return mention
	})
}
