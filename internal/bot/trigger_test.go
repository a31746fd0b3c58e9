package bot

import "testing"

func TestParseTrigger(t *testing.T) {
	const botUserID = "111222333"

	tests := []struct {
		name        string
		content     string
		mentionsBot bool
		wantSubject string
		wantOK      bool
	}{
		{
			name:        "debate me on",
			content:     "debate me on pineapple pizza",
			wantSubject: "pineapple pizza",
			wantOK:      true,
		},
		{
			name:        "debate me about",
			content:     "Debate me about tabs vs spaces",
			wantSubject: "tabs vs spaces",
			wantOK:      true,
		},
		{
			name:        "debate me without preposition",
			content:     "debate me nuclear power",
			wantSubject: "nuclear power",
			wantOK:      true,
		},
		{
			name:        "fight me on",
			content:     "fight me on the oxford comma",
			wantSubject: "the oxford comma",
			wantOK:      true,
		},
		{
			name:        "argue with me about",
			content:     "ARGUE WITH ME ABOUT remote work",
			wantSubject: "remote work",
			wantOK:      true,
		},
		{
			name:        "phrase with surrounding whitespace",
			content:     "   debate me on cats   ",
			wantSubject: "cats",
			wantOK:      true,
		},
		{
			name:        "mention with subject",
			content:     "<@111222333> electric cars are overrated",
			mentionsBot: true,
			wantSubject: "electric cars are overrated",
			wantOK:      true,
		},
		{
			name:        "nickname mention with subject",
			content:     "<@!111222333> crypto",
			mentionsBot: true,
			wantSubject: "crypto",
			wantOK:      true,
		},
		{
			name:        "mention keeps other user mentions in subject",
			content:     "<@111222333> <@444555666> is wrong about soccer",
			mentionsBot: true,
			wantSubject: "<@444555666> is wrong about soccer",
			wantOK:      true,
		},
		{
			name:        "bare mention has no subject",
			content:     "<@111222333>",
			mentionsBot: true,
			wantOK:      false,
		},
		{
			name:    "plain chatter",
			content: "what a nice day",
			wantOK:  false,
		},
		{
			name:    "phrase without subject",
			content: "debate me",
			wantOK:  false,
		},
		{
			name:    "mention flag unset",
			content: "electric cars are overrated",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, ok := parseTrigger(tt.content, botUserID, tt.mentionsBot)
			if ok != tt.wantOK {
				t.Fatalf("parseTrigger(%q) ok = %v, want %v", tt.content, ok, tt.wantOK)
			}
			if ok && subject != tt.wantSubject {
				t.Errorf("subject = %q, want %q", subject, tt.wantSubject)
			}
		})
	}
}
