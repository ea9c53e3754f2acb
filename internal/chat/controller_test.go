package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTakeReceiverOnce(t *testing.T) {
	c := NewController()

	require.NotNil(t, c.TakeReceiver())
	assert.Nil(t, c.TakeReceiver())
}

func TestSendWithoutConnection(t *testing.T) {
	c := NewController()

	// No connection is alive, so this must be a silent no-op.
	c.Send("hello")
}

func TestJoinReceiveLeave(t *testing.T) {
	url, received := fakeChatServer(t, []string{
		":foo!foo@foo.tmi.twitch.tv PRIVMSG #somechannel :hello\r\n",
	})

	c := NewController()
	rx := c.TakeReceiver()
	require.NotNil(t, rx)

	c.Join(ConnectConfig{Channel: "somechannel", Nick: "tester", OAuth: "tok", URL: url})
	defer c.Leave()

	assert.Equal(t, "PASS oauth:tok", nextFrame(t, received))
	assert.Equal(t, "NICK tester", nextFrame(t, received))
	assert.Equal(t, "CAP REQ :twitch.tv/tags", nextFrame(t, received))
	assert.Equal(t, "JOIN #somechannel", nextFrame(t, received))

	msg := nextMessage(t, rx)
	assert.Equal(t, Message{Author: "foo", Text: "hello"}, msg)

	c.Send("hi chat")
	assert.Equal(t, "PRIVMSG #somechannel :hi chat", nextFrame(t, received))
}

func TestLeaveWithoutJoin(t *testing.T) {
	c := NewController()

	c.Leave()
}
