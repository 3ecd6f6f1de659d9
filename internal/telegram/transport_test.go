package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		user   *tgbotapi.User
		expect string
	}{
		{
			name:   "first name only",
			user:   &tgbotapi.User{FirstName: "Анна"},
			expect: "Анна",
		},
		{
			name:   "first and last name",
			user:   &tgbotapi.User{FirstName: "Анна", LastName: "Иванова"},
			expect: "Анна Иванова",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := displayName(tt.user); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
