package testutil

import (
	tele "gopkg.in/telebot.v3"
)

// FakeContext is a minimal tele.Context recording sent messages.
// Only Sender, Text and Send are implemented.
type FakeContext struct {
	tele.Context

	User    *tele.User
	MsgText string
	SendErr error

	Sent    []interface{}
	Options [][]interface{}
}

// NewFakeContext creates a context for a text message from the user
func NewFakeContext(userID int64, username, text string) *FakeContext {
	return &FakeContext{
		User:    &tele.User{ID: userID, Username: username},
		MsgText: text,
	}
}

func (c *FakeContext) Sender() *tele.User {
	return c.User
}

func (c *FakeContext) Text() string {
	return c.MsgText
}

func (c *FakeContext) Send(what interface{}, opts ...interface{}) error {
	c.Sent = append(c.Sent, what)
	c.Options = append(c.Options, opts)
	return c.SendErr
}
