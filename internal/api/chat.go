package api

import (
	"context"
	"os"
)

// cliKeyEnv holds the chat API key. It is read at call time, not cached, so
// a key exported mid-session takes effect on the next message.
const cliKeyEnv = "PAM_CLI_API_KEY"

type chatRequest struct {
	Message   string `json:"message"`
	User      string `json:"user"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// Chat sends one message in the conversation identified by sessionID and
// returns the assistant's reply. Identity travels both in the body and in the
// X-User-Email header; X-PAM-CLI-Key is always sent, empty when the env var
// is unset, so the service can tell "no key" from "client predates keys".
func (c *Client) Chat(ctx context.Context, message, user, sessionID string) (string, error) {
	if message == "" {
		return "", &ValidationError{Op: "chat", Msg: "message is empty"}
	}

	headers := map[string]string{
		"X-User-Email":  user,
		"X-PAM-CLI-Key": os.Getenv(cliKeyEnv),
	}

	body := chatRequest{Message: message, User: user, SessionID: sessionID}
	resp, err := c.do(ctx, "chat", "POST", "/chat", body, headers)
	if err != nil {
		return "", err
	}

	var out chatResponse
	if err := decodeJSON("chat", resp, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}
