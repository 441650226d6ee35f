package relay

import (
	"fmt"
	"strings"

	"tradingvault/internal/models"
)

// DirectionLabel maps a raw direction value to its channel display label.
// Limit/stop variants are matched before the plain buy/sell substrings so
// "buy_limit" renders as "BUY LIMIT 📈" and not "BUY 📈". Unknown values get
// an upper-cased, underscore-to-space fallback; empty input renders "N/A".
func DirectionLabel(raw string) string {
	d := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case d == "":
		return "N/A"
	case strings.Contains(d, "buy_limit"):
		return "BUY LIMIT 📈"
	case strings.Contains(d, "sell_limit"):
		return "SELL LIMIT 📉"
	case strings.Contains(d, "buy_stop"):
		return "BUY STOP 📈"
	case strings.Contains(d, "sell_stop"):
		return "SELL STOP 📉"
	case strings.Contains(d, "buy"):
		return "BUY 📈"
	case strings.Contains(d, "sell"):
		return "SELL 📉"
	default:
		return strings.ToUpper(strings.ReplaceAll(d, "_", " "))
	}
}

// FormatSignal renders the channel message for one signal, Markdown parse
// mode assumed by the sender.
func FormatSignal(sig models.Signal) string {
	winRate := "N/A"
	if sig.WinRate != nil {
		winRate = sig.WinRate.String() + "%"
	}

	return fmt.Sprintf(`🔥 *New Signal*

*Pair:* %s
*Direction:* %s
*Entry:* %s
*TP:* %s
*SL:* %s
*Win Rate:* %s`,
		sig.Symbol,
		DirectionLabel(sig.Direction),
		sig.Entry.String(),
		sig.TP.String(),
		sig.SL.String(),
		winRate,
	)
}
