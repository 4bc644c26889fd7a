package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"solscreener/internal/config"
	"solscreener/internal/monitors"
	"solscreener/internal/safety"
	"solscreener/internal/scan"
	"solscreener/internal/scoring"
)

func sampleReport() ScreeningReport {
	previous := 42.0
	return ScreeningReport{
		SessionID: "session-1",
		Scanned:   12,
		Candidates: []Candidate{{
			Project: scan.Project{
				Mint:         "MINT1",
				Symbol:       "EXM",
				LiquidityUSD: 52000,
				Volume24hUSD: 150000,
				PriceUSD:     0.0042,
				TotalScore:   71.5,
			},
			Safety: safety.Report{Mint: "MINT1", Level: safety.LevelSafe},
			Expectation: scoring.Expectation{
				HeatLevel:   4,
				Confidence:  85,
				PositionPct: 5,
				Reasoning:   []string{"score 71.5 sets base heat 4"},
			},
			PreviousScore: &previous,
		}},
	}
}

func TestUnconfiguredServiceIsNoop(t *testing.T) {
	cfg := config.Default()
	service := NewService(&cfg)
	if _, ok := service.(noopService); !ok {
		t.Fatalf("expected noop service, got %T", service)
	}
	if err := service.NotifyScreeningResults(context.Background(), sampleReport()); err != nil {
		t.Fatalf("noop should never fail: %v", err)
	}
}

func TestDiscordScreeningEmbeds(t *testing.T) {
	var captured discordMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.DiscordWebhookURL = server.URL
	service := NewService(&cfg)

	if err := service.NotifyScreeningResults(context.Background(), sampleReport()); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if !strings.Contains(captured.Content, "1 new candidates") {
		t.Fatalf("unexpected content %q", captured.Content)
	}
	if len(captured.Embeds) != 1 {
		t.Fatalf("expected 1 embed, got %d", len(captured.Embeds))
	}
	embed := captured.Embeds[0]
	if !strings.Contains(embed.Title, "EXM") {
		t.Fatalf("embed title should carry symbol, got %q", embed.Title)
	}
	if embed.Color != colorGreen {
		t.Fatalf("safe candidate should be green, got %#x", embed.Color)
	}
	var hasChange bool
	for _, field := range embed.Fields {
		if field.Name == "Score change" && strings.Contains(field.Value, "42.0 -> 71.5") {
			hasChange = true
		}
	}
	if !hasChange {
		t.Fatalf("expected score change field, got %+v", embed.Fields)
	}
}

func TestDiscordErrorUsesFencedDetail(t *testing.T) {
	var captured discordMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
	}))
	defer server.Close()

	service := &discordService{webhookURL: server.URL, client: server.Client()}
	err := service.NotifyError(context.Background(), context.DeadlineExceeded, "screening cycle")
	if err != nil {
		t.Fatalf("notify error: %v", err)
	}
	if len(captured.Embeds) != 1 {
		t.Fatalf("expected 1 embed, got %d", len(captured.Embeds))
	}
	embed := captured.Embeds[0]
	if !strings.Contains(embed.Title, "screening cycle") {
		t.Fatalf("unexpected title %q", embed.Title)
	}
	if !strings.HasPrefix(embed.Description, "```") {
		t.Fatalf("detail should be fenced, got %q", embed.Description)
	}
}

func TestTelegramTruncation(t *testing.T) {
	var captured struct {
		ChatID string `json:"chat_id"`
		Text   string `json:"text"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
	}))
	defer server.Close()

	service := &telegramService{endpoint: server.URL, chatID: "12345", client: server.Client()}
	if err := service.send(context.Background(), strings.Repeat("x", 5000)); err != nil {
		t.Fatalf("send: %v", err)
	}
	if captured.ChatID != "12345" {
		t.Fatalf("unexpected chat id %q", captured.ChatID)
	}
	if len(captured.Text) != telegramMaxChars {
		t.Fatalf("expected truncation to %d chars, got %d", telegramMaxChars, len(captured.Text))
	}
	if !strings.HasSuffix(captured.Text, "...") {
		t.Fatal("truncated text should end with ellipsis")
	}
}

func TestTruncatePreservesRuneBoundaries(t *testing.T) {
	text := "liquidity " + strings.Repeat("🔥", 50)
	for limit := 10; limit < 30; limit++ {
		out := truncate(text, limit)
		if len(out) > limit {
			t.Fatalf("limit %d: result is %d bytes", limit, len(out))
		}
		if !utf8.ValidString(out) {
			t.Fatalf("limit %d: truncation split a rune: %q", limit, out)
		}
		if !strings.HasSuffix(out, "...") {
			t.Fatalf("limit %d: missing ellipsis: %q", limit, out)
		}
	}
	if got := truncate("short", 100); got != "short" {
		t.Fatalf("text under the limit must pass through, got %q", got)
	}
}

func TestNtfyHeaders(t *testing.T) {
	var title, tags, priority string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		title = r.Header.Get("Title")
		tags = r.Header.Get("Tags")
		priority = r.Header.Get("Priority")
	}))
	defer server.Close()

	service := &ntfyService{endpoint: server.URL, client: server.Client()}
	alerts := []monitors.Alert{{Kind: monitors.KindLiquidity, Title: "EXM liquidity removed", Detail: "gone"}}
	if err := service.NotifyRealtimeAlerts(context.Background(), alerts); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if !strings.Contains(title, "1 realtime alert") {
		t.Fatalf("unexpected title %q", title)
	}
	if !strings.Contains(tags, "realtime") {
		t.Fatalf("unexpected tags %q", tags)
	}
	if priority != "high" {
		t.Fatalf("unexpected priority %q", priority)
	}
}

func TestHubFansOutAndJoinsErrors(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	var goodHits int
	counting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		goodHits++
	}))
	defer counting.Close()

	h := hub{sinks: []Service{
		&ntfyService{endpoint: counting.URL, client: counting.Client()},
		&ntfyService{endpoint: bad.URL, client: bad.Client()},
	}}

	err := h.TestNotification(context.Background())
	if err == nil {
		t.Fatal("expected joined error from failing sink")
	}
	if goodHits != 1 {
		t.Fatalf("healthy sink should still be hit, got %d", goodHits)
	}
}

func TestNewServiceBuildsHub(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.DiscordWebhookURL = "https://discord.example/webhook"
	cfg.Notifications.TelegramBotToken = "token"
	cfg.Notifications.TelegramChatID = "chat"
	cfg.Notifications.NtfyTopic = "https://ntfy.sh/screener"

	service := NewService(&cfg)
	h, ok := service.(hub)
	if !ok {
		t.Fatalf("expected hub, got %T", service)
	}
	if len(h.sinks) != 3 {
		t.Fatalf("expected 3 sinks, got %d", len(h.sinks))
	}
}
