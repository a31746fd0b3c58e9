package discord

import "context"

// MessageEvent is an inbound guild message, already resolved against the
// gateway state (thread-ness, bot mention).
type MessageEvent struct {
	GuildID     string
	ChannelID   string
	MessageID   string
	AuthorID    string
	AuthorIsBot bool
	Content     string
	MentionsBot bool
	IsThread    bool
}

// ThreadMessage is one message of a thread's recent history, oldest first.
type ThreadMessage struct {
	AuthorID    string
	AuthorIsBot bool
	Content     string
}

type FileMessage struct {
	ChannelID string
	Content   string
	Filename  string
	FileBody  []byte
}

type Client interface {
	Connect(ctx context.Context) error
	Close() error
	Run() error
	GetBotUserID() (string, error)
	RegisterMessageCreateHandler(handler func(MessageEvent))
	SendChannelMessage(channelID, content string) error
	SendChannelMessageWithFile(msg FileMessage) error
	// CreateThread starts a public thread on the given message and returns
	// the new thread's channel id.
	CreateThread(channelID, messageID, name string) (string, error)
	// TriggerTyping shows the typing indicator for roughly ten seconds.
	TriggerTyping(channelID string) error
	// ListRecentMessages returns up to limit messages of the channel's
	// history, oldest first.
	ListRecentMessages(channelID string, limit int) ([]ThreadMessage, error)
}
