package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMessage(t *testing.T) {
	data := []struct {
		name string
		line string
		msg  Message
		ok   bool
	}{
		{
			name: "simple message",
			line: ":foo!foo@foo.tmi.twitch.tv PRIVMSG #somechannel :bleedPurple\r\n",
			msg:  Message{Author: "foo", Text: "bleedPurple"},
			ok:   true,
		},
		{
			name: "message containing colons",
			line: ":foo!foo@foo.tmi.twitch.tv PRIVMSG #somechannel :look: a colon\r\n",
			msg:  Message{Author: "foo", Text: "look: a colon"},
			ok:   true,
		},
		{
			name: "server notice without author",
			line: ":tmi.twitch.tv PRIVMSG #somechannel :notice\r\n",
			ok:   false,
		},
	}

	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			msg, ok := ParseMessage(d.line)
			assert.Equal(t, d.ok, ok)
			if d.ok {
				assert.Equal(t, d.msg, msg)
			}
		})
	}
}

func TestParseTaggedMessage(t *testing.T) {
	data := []struct {
		name string
		line string
		msg  Message
		ok   bool
	}{
		{
			name: "tagged message with color",
			line: "@badge-info=;color=#FF0000;display-name=Foo;emotes= :foo!foo@foo.tmi.twitch.tv PRIVMSG #somechannel :hello there\r\n",
			msg:  Message{Author: "Foo", Color: "#FF0000", Text: "hello there"},
			ok:   true,
		},
		{
			name: "tagged message without color",
			line: "@badge-info=;color=;display-name=Foo :foo!foo@foo.tmi.twitch.tv PRIVMSG #somechannel :hi\r\n",
			msg:  Message{Author: "Foo", Text: "hi"},
			ok:   true,
		},
		{
			name: "missing display name",
			line: "@badge-info=;color=#FF0000 :foo!foo@foo.tmi.twitch.tv PRIVMSG #somechannel :hi\r\n",
			ok:   false,
		},
		{
			name: "no message body",
			line: "@badge-info= :tmi.twitch.tv CLEARCHAT #somechannel\r\n",
			ok:   false,
		},
	}

	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			msg, ok := ParseTaggedMessage(d.line)
			assert.Equal(t, d.ok, ok)
			if d.ok {
				assert.Equal(t, d.msg, msg)
			}
		})
	}
}
