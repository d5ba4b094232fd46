package controller

import (
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/defamed-sol/github-analyzer-bot/config"
	"github.com/defamed-sol/github-analyzer-bot/model"
	"github.com/defamed-sol/github-analyzer-bot/service"
	"github.com/defamed-sol/github-analyzer-bot/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/remeh/sizedwaitgroup"
	log "github.com/sirupsen/logrus"
)

// accepts a plain username or a pasted profile URL like https://github.com/octocat
var githubProfileURLPattern = regexp.MustCompile(`github\.com/([^/\s]+)/?$`)

type BotController struct {
	bot             *tgbotapi.BotAPI
	analyzerService service.AnalyzerService
	scanCounter     store.ScanCounter
	config          config.Config
}

func NewBotController(config config.Config, analyzerService service.AnalyzerService, scanCounter store.ScanCounter) (*BotController, error) {
	bot, err := tgbotapi.NewBotAPI(config.Telegram.Token)

	if err != nil {
		return nil, err
	}

	log.WithField("botUsername", bot.Self.UserName).Info("telegram bot authorized")

	return &BotController{
		bot:             bot,
		analyzerService: analyzerService,
		scanCounter:     scanCounter,
		config:          config,
	}, nil
}

// Run consumes telegram updates until the context is cancelled
// each incoming message is analyzed in its own goroutine, bounded by the
// configured parallel tasks limit. analyses for different users never share state
func (b *BotController) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = b.config.Telegram.UpdateTimeout

	updates := b.bot.GetUpdatesChan(updateConfig)

	go func() {
		<-ctx.Done()
		b.bot.StopReceivingUpdates()
	}()

	swg := sizedwaitgroup.New(b.config.Tasks.MaxParallelTasksAllowed)

	for update := range updates {
		if update.Message == nil || update.Message.Text == "" {
			continue
		}

		message := update.Message

		swg.Add()
		go func() {
			defer swg.Done()
			b.handleMessage(ctx, message)
		}()
	}

	log.Debug("waiting for in-flight analyses to finish")
	swg.Wait()
}

func (b *BotController) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		switch message.Command() {
		case "start":
			b.reply(message.Chat.ID, startMessage())
		case "help":
			b.reply(message.Chat.ID, helpMessage())
		default:
			b.reply(message.Chat.ID, "Unknown command. Use /help to see what I can do.")
		}

		return
	}

	username := ExtractUsername(message.Text)

	log.WithFields(log.Fields{
		"chatID":   message.Chat.ID,
		"username": username,
	}).Info("analysis requested from telegram")

	result, err := b.analyzerService.Analyze(ctx, username)

	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			b.reply(message.Chat.ID, "❌ Sorry, I couldn't find that GitHub user.")
			return
		}

		if errors.Is(err, model.ErrRateLimitReached) {
			b.reply(message.Chat.ID, "⏳ The GitHub rate limit has been reached. Please try again in a few minutes.")
			return
		}

		log.WithError(err).Error("analysis failed")
		b.reply(message.Chat.ID, "⚠️ Something went wrong while analyzing that profile. Please try again later.")
		return
	}

	// the counter belongs to the chat layer, a failed increment never blocks the report
	scanCount, err := b.scanCounter.Increment(result.User.Login)

	if err != nil {
		log.WithError(err).Warning("unable to increment scan counter")
	}

	b.reply(message.Chat.ID, FormatAnalysisReport(result, scanCount))
}

func (b *BotController) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := b.bot.Send(msg); err != nil {
		log.WithField("chatID", chatID).WithError(err).Error("unable to send telegram message")
	}
}

// ExtractUsername returns the GitHub login from a pasted profile URL,
// or the trimmed input unchanged when it is not a URL
func ExtractUsername(text string) string {
	trimmed := strings.TrimSpace(text)

	if match := githubProfileURLPattern.FindStringSubmatch(trimmed); match != nil {
		return match[1]
	}

	return trimmed
}

// FormatAnalysisReport renders an analysis result as the HTML message sent back
// to the chat: score breakdown, language chart, social links and warnings
func FormatAnalysisReport(result *model.AnalysisResult, scanCount uint64) string {
	breakdown := result.Breakdown

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("👤 <b>GitHub User</b>: %s\n", html.EscapeString(result.User.Login)))
	sb.WriteString(fmt.Sprintf("🌐 <b>Profile</b>: %s\n", html.EscapeString(result.User.ProfileURL)))
	sb.WriteString(fmt.Sprintf("📦 <b>Public Repos</b>: %d\n\n", len(result.Repositories)))

	sb.WriteString(fmt.Sprintf("🔹 <b>Account Age</b>: %.2f/10\n", breakdown.AccountAge))
	sb.WriteString(fmt.Sprintf("🔹 <b>README Depth</b>: %d/10\n", breakdown.Readme))
	sb.WriteString(fmt.Sprintf("🔹 <b>Commit Activity</b>: %d/25\n", breakdown.Commit))
	sb.WriteString(fmt.Sprintf("🔹 <b>PRs &amp; Issues (30d)</b>: %d\n", breakdown.PRIssues))
	sb.WriteString(fmt.Sprintf("🔹 <b>Profile Bio/Blog</b>: %d/5\n", breakdown.ProfileBioBlog))
	sb.WriteString(fmt.Sprintf("🔹 <b>AI/Crypto Signals</b>: %d/6\n\n", breakdown.AICrypto))

	sb.WriteString(fmt.Sprintf("✅ <b>Total Authenticity Score</b>: %.2f/100\n\n", result.Score))

	sb.WriteString(fmt.Sprintf("<pre>%s</pre>\n\n", html.EscapeString(result.LanguageChart)))

	if len(result.DependencyFindings) > 0 {
		sb.WriteString("<b>Dependency Findings</b>:\n")
		for _, finding := range result.DependencyFindings {
			sb.WriteString(fmt.Sprintf("📄 %s\n", html.EscapeString(finding)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("<b>Social Links</b>:\n")

	socialLinks := make([]string, 0, 2)

	if result.User.Blog != "" {
		socialLinks = append(socialLinks, fmt.Sprintf("🔗 Website/Blog: %s", html.EscapeString(result.User.Blog)))
	}

	if result.User.TwitterUsername != "" {
		socialLinks = append(socialLinks, fmt.Sprintf("🐦 Twitter: @%s", html.EscapeString(result.User.TwitterUsername)))
	}

	if len(socialLinks) > 0 {
		sb.WriteString(strings.Join(socialLinks, "\n"))
	} else {
		sb.WriteString("No additional social links found.")
	}

	sb.WriteString("\n\n<b>Analysis Warnings</b>:\n")

	if len(result.Warnings) > 0 {
		for _, warning := range result.Warnings {
			sb.WriteString(fmt.Sprintf("⚠️ %s\n", html.EscapeString(warning)))
		}
	} else {
		sb.WriteString("No obvious warnings. 🎉\n")
	}

	sb.WriteString(fmt.Sprintf("\n🔎 This profile has been scanned %d time(s).", scanCount))

	return sb.String()
}

func startMessage() string {
	return "<b>Welcome to the GitHub Analyzer Bot!</b>\n\n" +
		"Send me a GitHub username or profile link, and I will check how legit the account is.\n\n" +
		"Use /help to see more commands."
}

func helpMessage() string {
	return "<b>How to use this bot</b>:\n" +
		"• Just type the GitHub username or paste a GitHub profile URL.\n" +
		"  Example: <code>octocat</code> or <code>https://github.com/octocat</code>\n" +
		"• I will fetch data about the account, analyze repos &amp; commit activity, and provide a score.\n\n" +
		"<b>Commands</b>:\n" +
		"/start - Start interacting with the bot\n" +
		"/help - Show this help message"
}
