package telegram

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"portfolioBenchBot/internal/finance"
	"portfolioBenchBot/internal/report"
	"portfolioBenchBot/internal/storage"
)

var (
	// /analyze SYMS AMOUNTS (START END | WINDOW) [CONFIDENCE]
	reAnalyze = regexp.MustCompile(`(?s)^/analyze(?:@[\w_]+)?(?:\s+(.*))?$`)
	// /usage [days]
	reUsage = regexp.MustCompile(`^/usage(?:@[\w_]+)?(?:\s+(\d+))?$`)
	// /help
	reHelp = regexp.MustCompile(`^/(help|start)(?:@[\w_]+)?$`)
)

const (
	analyzeTimeout = 60 * time.Second
	// Telegram rejects photo captions above this many characters.
	maxCaption = 1024
)

// Sender is the part of the Telegram API the handlers talk to.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Analyzer runs one analysis request.
type Analyzer interface {
	Run(ctx context.Context, req finance.Request) (*finance.Result, error)
}

// UsageStore records and aggregates bot commands.
type UsageStore interface {
	RecordUsage(command string, chatID int64, ts time.Time) error
	UsageSince(since time.Time) (map[string]*storage.UsageStats, error)
}

// Commentator writes optional prose about a text summary.
type Commentator interface {
	Comment(ctx context.Context, summary string) (string, error)
}

// Deps are the collaborators of the bot. Commentator may be nil.
type Deps struct {
	Analyzer          Analyzer
	Usage             UsageStore
	Commentator       Commentator
	DefaultConfidence float64
}

type Handlers struct {
	api  Sender
	deps Deps
	log  zerolog.Logger
	now  func() time.Time
}

func NewHandlers(api Sender, deps Deps, log zerolog.Logger) *Handlers {
	if deps.DefaultConfidence == 0 {
		deps.DefaultConfidence = finance.DefaultConfidence
	}
	return &Handlers{
		api:  api,
		deps: deps,
		log:  log,
		now:  time.Now,
	}
}

func (h *Handlers) HandleMessage(m *tgbotapi.Message) {
	txt := strings.TrimSpace(m.Text)
	chatID := m.Chat.ID

	switch {
	case reAnalyze.MatchString(txt):
		h.record("analyze", chatID)
		h.handleAnalyze(chatID, txt)

	case reUsage.MatchString(txt):
		h.record("usage", chatID)
		days := 7
		if g := reUsage.FindStringSubmatch(txt); len(g) == 2 && g[1] != "" {
			days, _ = strconv.Atoi(g[1])
			if days < 1 {
				days = 1
			}
			if days > 365 {
				days = 365
			}
		}
		h.handleUsage(chatID, days)

	case reHelp.MatchString(txt):
		h.record("help", chatID)
		h.handleHelp(chatID)
	}
}

func (h *Handlers) handleAnalyze(chatID int64, txt string) {
	req, err := finance.ParseAnalyzeCommand(txt, h.now(), h.deps.DefaultConfidence)
	if err != nil {
		h.reply(chatID, report.ErrorMessage(err))
		return
	}
	log := h.log.With().Int64("chat_id", chatID).Strs("symbols", req.Symbols).Logger()
	h.reply(chatID, "Analyzing "+strings.Join(req.Symbols, ", ")+"…")

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()
	res, err := h.deps.Analyzer.Run(ctx, req)
	if err != nil {
		log.Warn().Err(err).Msg("analysis failed")
		h.reply(chatID, report.ErrorMessage(err))
		return
	}

	summary := report.Text(res)
	img, err := finance.RenderComparisonChart(res)
	if err != nil || len(summary) > maxCaption {
		if err != nil {
			log.Error().Err(err).Msg("chart failed")
		}
		h.reply(chatID, summary)
	}
	if err == nil {
		name := strings.Join(req.Symbols, "_") + "_vs_" + res.Benchmark + ".png"
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: img})
		if len(summary) <= maxCaption {
			photo.Caption = summary
		}
		h.send(photo)
	}

	if h.deps.Commentator == nil {
		return
	}
	comment, err := h.deps.Commentator.Comment(ctx, summary)
	if err != nil {
		log.Warn().Err(err).Msg("commentary failed")
		return
	}
	h.reply(chatID, comment)
}

func (h *Handlers) handleUsage(chatID int64, days int) {
	if h.deps.Usage == nil {
		h.reply(chatID, "Usage tracking is disabled.")
		return
	}
	since := h.now().AddDate(0, 0, -days)
	stats, err := h.deps.Usage.UsageSince(since)
	if err != nil {
		h.reply(chatID, "Usage failed: "+err.Error())
		return
	}
	text := finance.UsageText(stats, days)
	img, err := finance.UsageChart(stats, days)
	if err != nil {
		h.reply(chatID, text)
		return
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "usage.png", Bytes: img})
	photo.Caption = text
	h.send(photo)
}

func (h *Handlers) handleHelp(chatID int64) {
	help := "Commands\n\n" +
		"- /analyze SYM1,SYM2 AMT1,AMT2 START END [CONF] - Compare a portfolio with the benchmark between two dates (YYYY-MM-DD)\n" +
		"- /analyze SYM1,SYM2 AMT WINDOW [CONF] - Same over the last 30d, 6w, 6m, 1y...; one amount applies to every symbol\n" +
		"- /usage [days] - Command usage over the last N days (default: 7)\n" +
		"\nCONF is the VaR confidence, 0.80 to 0.99 (default 0.95). Prices are Yahoo Finance adjusted closes.\n" +
		"Example: /analyze VALE3.SA,PETR4.SA 1000,500 2023-01-02 2023-06-30 0.95"
	h.reply(chatID, help)
}

func (h *Handlers) record(command string, chatID int64) {
	if h.deps.Usage == nil {
		return
	}
	if err := h.deps.Usage.RecordUsage(command, chatID, h.now()); err != nil {
		h.log.Warn().Err(err).Str("command", command).Msg("usage not recorded")
	}
}

func (h *Handlers) reply(chatID int64, text string) {
	h.send(tgbotapi.NewMessage(chatID, text))
}

func (h *Handlers) send(c tgbotapi.Chattable) {
	if _, err := h.api.Send(c); err != nil {
		h.log.Error().Err(err).Msg("telegram send failed")
	}
}
