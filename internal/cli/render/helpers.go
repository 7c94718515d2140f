package render

import (
	"math/big"
	"strings"

	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	labelStyle    = color.New(color.Faint)
	addressStyle  = color.New(color.FgWhite)
	nameStyle     = color.New(color.FgYellow, color.Bold)
	headerStyle   = color.New(color.FgCyan, color.Bold)
	tagsStyle     = color.New(color.FgCyan)
	successStyle  = color.New(color.FgGreen)
	failureStyle  = color.New(color.FgRed)
	pendingStyle  = color.New(color.FgYellow)
	skippedStyle  = color.New(color.Faint)
	reusedStyle   = color.New(color.FgHiBlack)
	timestampForm = "2006-01-02 15:04:05"
)

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	if len(message) > 0 {
		message = strings.ToUpper(message[:1]) + message[1:]
	}
	return failureStyle.Sprintf("❌ %s", message)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return successStyle.Sprintf("✅ %s", message)
}

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return pendingStyle.Sprintf("⚠️  %s", message)
}

// FormatAmount renders a raw token amount in whole units with the symbol
func FormatAmount(amount *big.Int, decimals uint8, symbol string) string {
	formatted := models.FormatUnits(amount, decimals)
	if symbol == "" {
		return formatted
	}
	return formatted + " " + symbol
}

// title turns an enum value like PROXY_ADMIN into "Proxy Admin"
func title(value string) string {
	words := strings.ReplaceAll(strings.ToLower(value), "_", " ")
	return cases.Title(language.English).String(words)
}

func verificationCell(info models.VerificationInfo) string {
	switch info.Status {
	case models.VerificationStatusVerified:
		return successStyle.Sprint("✔︎ verified")
	case models.VerificationStatusFailed:
		return failureStyle.Sprint("✗ failed")
	case models.VerificationStatusSubmitted:
		return pendingStyle.Sprint("⏳ submitted")
	case models.VerificationStatusSkipped:
		return skippedStyle.Sprint("- skipped")
	default:
		return skippedStyle.Sprint("unverified")
	}
}
