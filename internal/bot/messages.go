package bot

import (
	"fmt"
	"unicode/utf8"
)

const (
	threadNameFormat  = "Debate: %s"
	threadNameMaxLen  = 100
	transcriptTitle   = ":page_facing_up:  **Full debate transcript attached.**"
	victoryTitle      = ":trophy:  **This debate is over. I win.**"
	victoryHintFormat = "-# Fallacies committed: %d. Better luck next time."
	apologyText       = "Sorry, something went wrong on my side. Give me a moment and poke me again."
)

func threadName(subject string) string {
	name := fmt.Sprintf(threadNameFormat, subject)
	if utf8.RuneCountInString(name) > threadNameMaxLen {
		name = string([]rune(name)[:threadNameMaxLen])
	}
	return name
}

func victoryAnnouncement(fallacyCount int) string {
	return victoryTitle + "\n" + fmt.Sprintf(victoryHintFormat, fallacyCount)
}
