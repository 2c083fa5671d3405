package models

import "time"

// OneTimeToken — одноразовый токен с TTL и флагом used. Одна форма для
// двух таблиц: email_verifications (TTL 24 часа) и password_resets
// (TTL 15 минут). Валиден пока used = FALSE и срок не истёк.
type OneTimeToken struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"created_at"`
}
