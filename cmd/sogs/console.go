package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sessionlab/go-sogs/models"
)

var (
	roomStyle    = lipgloss.NewStyle().Bold(true)
	senderStyle  = lipgloss.NewStyle().Faint(true)
	deletedStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	inboxStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
)

// console prints everything the pollers pull in. It is the terminal
// stand-in for a real message store and UI.
type console struct{}

func newConsole() *console { return &console{} }

func (c *console) HandleMessages(_ context.Context, server models.Server, room string, messages []models.Message) error {
	header := roomStyle.Render(fmt.Sprintf("%s/%s", server.Name, room))
	for _, m := range messages {
		text := "<undecodable>"
		if m.Data != nil {
			if raw, err := base64.StdEncoding.DecodeString(*m.Data); err == nil {
				text = string(raw)
			}
		}
		sender := ""
		if m.Sender != nil {
			sender = *m.Sender
		}
		at := time.Unix(int64(m.PostedAt), 0).Format(time.TimeOnly)
		fmt.Printf("%s %s %s: %s\n", header, senderStyle.Render(at), senderStyle.Render(sender), text)
	}
	return nil
}

func (c *console) HandleDeletions(_ context.Context, server models.Server, room string, ids []int64) error {
	header := roomStyle.Render(fmt.Sprintf("%s/%s", server.Name, room))
	for _, id := range ids {
		fmt.Printf("%s %s\n", header, deletedStyle.Render(fmt.Sprintf("message %d deleted", id)))
	}
	return nil
}

func (c *console) HandleDirectMessages(_ context.Context, server models.Server, outbox bool, messages []models.DirectMessage) error {
	direction := "inbox"
	if outbox {
		direction = "outbox"
	}
	header := inboxStyle.Render(fmt.Sprintf("%s %s", server.Name, direction))
	for _, m := range messages {
		fmt.Printf("%s #%d from %s (%d bytes sealed)\n", header, m.ID, m.Sender, len(m.Message))
	}
	return nil
}
