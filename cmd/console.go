package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/maltsev-d/Telegram-HR-bot-ru/internal/dialog"
	"github.com/maltsev-d/Telegram-HR-bot-ru/internal/logger"
	"github.com/maltsev-d/Telegram-HR-bot-ru/internal/records"
	"github.com/maltsev-d/Telegram-HR-bot-ru/internal/vacancy"
)

const (
	promptFreeText = "type a message"
	promptExit     = "exit"

	consoleIdentity = 1
)

var errConsoleExit = errors.New("exit requested")

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Drive the intake dialog in the terminal, without a bot token",
	Run: func(_ *cobra.Command, _ []string) {
		console()
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

// consoleMessenger prints outbound messages to the terminal and remembers
// offered buttons so the prompt loop can present them.
type consoleMessenger struct {
	pending []dialog.Choice
}

func (m *consoleMessenger) SendText(id int64, text string) error {
	fmt.Printf("\n[-> %d] %s\n", id, text)
	return nil
}

func (m *consoleMessenger) SendChoice(id int64, text string, choices []dialog.Choice) error {
	fmt.Printf("\n[-> %d] %s\n", id, text)
	m.pending = append(m.pending, choices...)
	return nil
}

func (m *consoleMessenger) SendDocument(id int64, path, caption string) error {
	fmt.Printf("\n[-> %d] %s (файл: %s)\n", id, caption, path)
	return nil
}

// takePending returns and clears the buttons accumulated during the last
// engine turn.
func (m *consoleMessenger) takePending() []dialog.Choice {
	pending := m.pending
	m.pending = nil
	return pending
}

func console() {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	store := records.New(config.DataFile)
	if err := store.EnsureInitialized(); err != nil {
		logger.Fatal("initializing the records store", zap.Error(err))
	}

	catalog, err := vacancy.Load(config.VacanciesFile)
	if err != nil {
		logger.Fatal("loading the vacancy catalog", zap.Error(err))
	}

	messenger := &consoleMessenger{}
	engine := dialog.New(store, catalog, messenger, logger)

	if err := engine.HandleStart(consoleIdentity, "Console User", "console"); err != nil {
		logger.Fatal("starting the dialog", zap.Error(err))
	}

	for {
		err := consoleTurn(engine, messenger)
		if errors.Is(err, errConsoleExit) {
			logger.Info("exiting", zap.String("reason", "got exit from prompt"))
			return
		}
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func consoleTurn(engine *dialog.Engine, messenger *consoleMessenger) error {
	pending := messenger.takePending()

	if len(pending) == 0 {
		text, err := readLine()
		if err != nil {
			return err
		}
		return sendToEngine(engine, text)
	}

	items := make([]string, 0, len(pending)+2)
	for _, c := range pending {
		items = append(items, c.Label)
	}
	items = append(items, promptFreeText, promptExit)

	selectPrompt := promptui.Select{
		Label: "Выберите действие",
		Items: items,
	}

	_, selected, err := selectPrompt.Run()
	if err != nil {
		return err
	}

	switch selected {
	case promptExit:
		return errConsoleExit
	case promptFreeText:
		text, err := readLine()
		if err != nil {
			return err
		}
		return sendToEngine(engine, text)
	default:
		for _, c := range pending {
			if c.Label == selected {
				return engine.HandleButton(consoleIdentity, c.Token)
			}
		}
		return fmt.Errorf("invalid selection: %s", selected)
	}
}

func readLine() (string, error) {
	textPrompt := promptui.Prompt{Label: "Сообщение"}
	return textPrompt.Run()
}

// sendToEngine routes slash commands the way the Telegram transport does and
// everything else as free text.
func sendToEngine(engine *dialog.Engine, text string) error {
	if strings.HasPrefix(text, "/") {
		parts := strings.Fields(strings.TrimPrefix(text, "/"))
		if len(parts) == 0 {
			return nil
		}
		if parts[0] == "start" {
			return engine.HandleStart(consoleIdentity, "Console User", "console")
		}
		return engine.HandleCommand(consoleIdentity, parts[0], parts[1:])
	}

	return engine.HandleText(consoleIdentity, text)
}
