package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"askterm/cmd/askterm/tui"
	"askterm/cmd/askterm/ui"
	"askterm/internal/clipboard"
	"askterm/internal/config"
	"askterm/internal/history"
	"askterm/internal/logging"
	"askterm/internal/prompt"
	"askterm/internal/questions"
)

var (
	askQuestion  string
	askOptions   []string
	askID        string
	askFile      string
	askCopy      bool
	askJSON      bool
	askNoHistory bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask one or more questions and print the answers",
	Long: `Asks a question and prints "<id><TAB><answer>" on stdout.

Use --option for each predefined answer. Arrow keys pick an option, typing
switches to free-form input, Alt+Enter (or Ctrl+J) inserts a newline and
Enter submits. Ctrl+V pastes from the system clipboard. Ctrl+C or Esc aborts
with exit status 130.

Example:
  askterm ask "Deploy to production?" -o yes -o no
  askterm ask --file questions.yaml --json`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askQuestion, "question", "q", "", "Question text (markdown)")
	askCmd.Flags().StringArrayVarP(&askOptions, "option", "o", nil, "Predefined answer (repeatable)")
	askCmd.Flags().StringVar(&askID, "id", "", "Session id reported with the answer (default: random UUID)")
	askCmd.Flags().StringVarP(&askFile, "file", "f", "", "YAML file with a batch of questions")
	askCmd.Flags().BoolVar(&askCopy, "copy", false, "Copy the last answer to the clipboard")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "Print answers as JSON lines")
	askCmd.Flags().BoolVar(&askNoHistory, "no-history", false, "Do not record answers")
}

// answer is one printed result.
type answer struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Value    string `json:"value"`
	Mode     string `json:"mode"`
}

// promptRunner drives one session to completion. Tests replace it.
var promptRunner = func(ctx context.Context, s *prompt.Session, v ui.View, keys tui.KeyMap) (string, error) {
	return tui.Run(ctx, s, v, keys)
}

func runAsk(cmd *cobra.Command, args []string) error {
	qs, err := resolveQuestions(args)
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store *history.Store
	if cfg.History.Enabled && !askNoHistory {
		store, err = history.Open(cfg.History.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer store.Close()
	}

	// Edits to the config file apply the logging level while prompts are open.
	if w, err := config.NewWatcher(configPath, 0, func(c *config.Config) {
		logger.Debug("config reloaded", zap.String("level", c.Logging.Level))
	}); err == nil {
		if err := w.Start(ctx); err != nil {
			logger.Debug("config watcher not started", zap.Error(err))
		}
		defer w.Stop()
	}

	clip := clipboard.New(clipboard.Options{
		Timeout:   cfg.GetClipboardTimeout(),
		TrimSpace: cfg.Clipboard.TrimSpace,
	})

	theme := ui.ThemeFor(cfg.UI.Theme)
	view := ui.View{Styles: ui.NewStyles(theme), ShowHint: cfg.UI.ShowHint}
	if cfg.UI.Markdown {
		view.Markdown = ui.NewMarkdown(theme, 76)
	}

	out := cmd.OutOrStdout()
	var last string
	for _, q := range qs {
		a, err := askOne(ctx, q, clip, view, store)
		if err != nil {
			return err
		}
		if err := printAnswer(out, a); err != nil {
			return err
		}
		last = a.Value
	}

	if askCopy {
		if err := clip.Write(last); err != nil {
			if errors.Is(err, clipboard.ErrUnavailable) {
				logger.Warn("--copy ignored", zap.Error(err))
			} else {
				return err
			}
		}
	}
	return nil
}

func askOne(ctx context.Context, q questions.Question, clip *clipboard.Clipboard, view ui.View, store *history.Store) (answer, error) {
	opts := append(cfg.SessionOptions(), prompt.WithContext(ctx))
	if cfg.Clipboard.Enabled {
		opts = append(opts, prompt.WithClipboard(clip))
	}
	s := prompt.New(q.ID, q.Text, q.Options, nil, opts...)

	value, err := promptRunner(ctx, s, view, tui.NewKeyMap(cfg.Keys, len(q.Options) > 0, cfg.Clipboard.Enabled))
	if err != nil {
		return answer{}, err
	}

	a := answer{ID: q.ID, Question: q.Text, Value: value, Mode: s.SubmittedFrom().String()}
	if store != nil {
		_, err := store.Record(ctx, history.Entry{
			SessionID: a.ID,
			Question:  a.Question,
			Options:   q.Options,
			Mode:      a.Mode,
			Value:     a.Value,
		})
		if err != nil {
			logger.Warn("answer not recorded", zap.Error(err))
		} else {
			logging.Root().Debug("answer recorded",
				zap.String("session_id", a.ID),
				zap.String("mode", a.Mode),
				zap.Int("runes", len([]rune(a.Value))))
			if _, err := store.Prune(ctx, cfg.History.MaxEntries); err != nil {
				logger.Warn("history prune failed", zap.Error(err))
			}
		}
	}
	return a, nil
}

func resolveQuestions(args []string) ([]questions.Question, error) {
	text := askQuestion
	if text == "" && len(args) > 0 {
		text = strings.Join(args, " ")
	}

	switch {
	case askFile != "" && text != "":
		return nil, fmt.Errorf("use either a question or --file, not both")
	case askFile != "":
		return questions.Load(askFile)
	case text != "":
		q, err := questions.New(askID, text, askOptions)
		if err != nil {
			return nil, err
		}
		return []questions.Question{q}, nil
	default:
		return nil, fmt.Errorf("a question is required (argument, --question or --file)")
	}
}

func printAnswer(w io.Writer, a answer) error {
	if askJSON {
		return json.NewEncoder(w).Encode(a)
	}
	_, err := fmt.Fprintf(w, "%s\t%s\n", a.ID, a.Value)
	return err
}
