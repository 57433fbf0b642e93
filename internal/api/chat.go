package api

import "context"

// SendChat posts one message; Data is the bot's reply.
func (c *Client) SendChat(ctx context.Context, content string) (Result[Message], error) {
	resp, err := c.post(ctx, "send chat", "/api/chat", sendChatReq{Content: content})
	if err != nil {
		return Result[Message]{}, err
	}
	return decode[Message](ctx, resp)
}

// History returns prior messages, oldest first.
func (c *Client) History(ctx context.Context) (Result[[]Message], error) {
	resp, err := c.get(ctx, "history", "/api/chat/history")
	if err != nil {
		return Result[[]Message]{}, err
	}
	return decode[[]Message](ctx, resp)
}
