package relay

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"tradingvault/internal/models"
)

func TestDirectionLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"buy", "BUY 📈"},
		{"sell", "SELL 📉"},
		{"BUY", "BUY 📈"},
		{"buy_limit", "BUY LIMIT 📈"},
		{"BUY_LIMIT", "BUY LIMIT 📈"},
		{"sell_limit", "SELL LIMIT 📉"},
		{"buy_stop", "BUY STOP 📈"},
		{"sell_stop", "SELL STOP 📉"},
		{"close_half", "CLOSE HALF"},
		{"", "N/A"},
		{"   ", "N/A"},
	}
	for _, tt := range tests {
		if got := DirectionLabel(tt.in); got != tt.want {
			t.Fatalf("DirectionLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDirectionLabelTotal(t *testing.T) {
	for _, in := range []string{"", "x", "buy_limit", "whatever_else", "___"} {
		if got := DirectionLabel(in); strings.TrimSpace(got) == "" {
			t.Fatalf("DirectionLabel(%q) produced empty label", in)
		}
	}
}

func TestFormatSignal(t *testing.T) {
	rate := decimal.NewFromFloat(72.5)
	sig := models.Signal{
		ID:        "sig-1",
		Symbol:    "XAUUSD",
		Direction: "buy_limit",
		Entry:     decimal.NewFromFloat(2315.5),
		TP:        decimal.NewFromFloat(2330),
		SL:        decimal.NewFromFloat(2300),
		WinRate:   &rate,
	}
	msg := FormatSignal(sig)
	for _, want := range []string{
		"🔥 *New Signal*",
		"*Pair:* XAUUSD",
		"*Direction:* BUY LIMIT 📈",
		"*Entry:* 2315.5",
		"*TP:* 2330",
		"*SL:* 2300",
		"*Win Rate:* 72.5%",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatSignalMissingWinRate(t *testing.T) {
	msg := FormatSignal(models.Signal{Symbol: "EURUSD", Direction: "sell"})
	if !strings.Contains(msg, "*Win Rate:* N/A") {
		t.Fatalf("missing win rate must render N/A:\n%s", msg)
	}
}
