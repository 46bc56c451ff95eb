// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// MessagesCookieName holds flash messages between a redirect and the next page
const MessagesCookieName = "messages"

// Message levels
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelError   = "error"
)

type Message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

func readMessages(r *http.Request) []Message {
	cookie, err := r.Cookie(MessagesCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var msgs []Message
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil
	}
	return msgs
}

// AddMessage queues a flash message for the next rendered page
func AddMessage(w http.ResponseWriter, r *http.Request, level, text string) {
	msgs := append(readMessages(r), Message{Level: level, Text: text})
	raw, _ := json.Marshal(msgs)
	http.SetCookie(w, &http.Cookie{
		Name:     MessagesCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopMessages returns the queued messages and clears them
func PopMessages(w http.ResponseWriter, r *http.Request) []Message {
	msgs := readMessages(r)
	if msgs == nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:   MessagesCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	return msgs
}
