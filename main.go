package main

import (
	"os"

	"github.com/maltsev-d/Telegram-HR-bot-ru/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
