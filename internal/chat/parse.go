package chat

import "strings"

// Message represents a chat message received from a channel.
type Message struct {
	// Author is the sender's display name, or login nick when tags are
	// unavailable.
	Author string
	// Color is the sender's chat color as sent in the message tags. Empty
	// when the server sent none.
	Color string
	// Text is the message body.
	Text string
}

// ParseMessage parses an untagged PRIVMSG line, e.g.
//
//	:foo!foo@foo.tmi.twitch.tv PRIVMSG #channel :hello there
//
// The boolean reports whether the line carried a well-formed author and
// body; malformed lines are skipped rather than surfaced.
func ParseMessage(line string) (Message, bool) {
	line, _, _ = strings.Cut(line, "\r\n")

	author, _, found := strings.Cut(line, "!")
	if !found || !strings.HasPrefix(author, ":") {
		return Message{}, false
	}
	author = author[1:]

	parts := strings.SplitN(line, ":", 3)
	text := parts[len(parts)-1]

	return Message{Author: author, Text: text}, true
}

// ParseTaggedMessage parses a PRIVMSG line carrying IRC v3 tags, e.g.
//
//	@color=#FF0000;display-name=Foo :foo!foo@foo.tmi.twitch.tv PRIVMSG #channel :hello
func ParseTaggedMessage(line string) (Message, bool) {
	line, _, _ = strings.Cut(line, "\r\n")

	rawTags, tail, found := strings.Cut(line, " :")
	if !found {
		return Message{}, false
	}

	_, text, found := strings.Cut(tail, " :")
	if !found {
		return Message{}, false
	}

	tags := parseTags(rawTags)

	author, ok := tags["display-name"]
	if !ok || author == "" {
		return Message{}, false
	}

	return Message{
		Author: author,
		Color:  tags["color"],
		Text:   text,
	}, true
}

func parseTags(rawTags string) map[string]string {
	rawTags = strings.TrimPrefix(rawTags, "@")

	tags := make(map[string]string)
	for _, pair := range strings.Split(rawTags, ";") {
		if key, value, found := strings.Cut(pair, "="); found {
			tags[key] = value
		}
	}
	return tags
}
