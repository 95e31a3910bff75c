// Package flash implements one-shot notification messages carried in a
// cookie between a redirect and the next rendered page.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const cookieName = "flash"

// Categories used across the app.
const (
	Success = "success"
	Warning = "warning"
	Error   = "error"
)

// Message is a single flash entry.
type Message struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Add appends a message to the flash cookie.
func Add(w http.ResponseWriter, r *http.Request, category, message string) {
	msgs := peek(r)
	msgs = append(msgs, Message{Category: category, Message: message})
	set(w, msgs)
}

// Pop returns all pending messages and clears the cookie.
func Pop(w http.ResponseWriter, r *http.Request) []Message {
	msgs := peek(r)
	if len(msgs) > 0 {
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return msgs
}

func peek(r *http.Request) []Message {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var msgs []Message
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil
	}
	return msgs
}

func set(w http.ResponseWriter, msgs []Message) {
	raw, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
