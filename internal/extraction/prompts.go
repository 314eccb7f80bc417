package extraction

import (
	"fmt"
	"strings"

	"github.com/mohamedagadya/Stocks/internal/models"
)

// PromptTemplates holds the fixed system prompts for intent extraction and
// sentiment summarization.
type PromptTemplates struct {
	ExtractionSystemPrompt string
	SummarySystemPrompt    string
}

// NewPromptTemplates returns the default prompts.
func NewPromptTemplates() *PromptTemplates {
	return &PromptTemplates{
		ExtractionSystemPrompt: buildExtractionSystemPrompt(),
		SummarySystemPrompt:    buildSummarySystemPrompt(),
	}
}

// buildExtractionSystemPrompt establishes the ticker suffix conventions the
// rest of the pipeline relies on and pins the response to a single JSON
// object shaped like RawExtraction.
func buildExtractionSystemPrompt() string {
	return `أنت خبير أسواق مالية. استخرج رمز السهم (Yahoo Finance Ticker) واسم الشركة بدقة.

القواعد الصارمة للرموز:
1. الأسهم المصرية (Egypt): يجب إضافة ".CA" في النهاية (مثال: COMI.CA).
2. الأسهم السعودية (Saudi): يجب إضافة ".SR" في النهاية (مثال: 2222.SR).
3. الأسهم الأمريكية (US): بدون لاحقة (مثال: AAPL, TSLA, NVDA).
4. العملات الرقمية: تنتهي بـ "-USD" (مثال: BTC-USD).

الرد JSON فقط:
{
    "action": "analyze",
    "ticker": "الرمز الصحيح باللاحقة",
    "search_term": "اسم الشركة بالعربي"
}

لو الكلام دردشة عادية: {"action": "chat", "reply": "..."}`
}

func buildSummarySystemPrompt() string {
	return "لخص وضع السهم (إيجابي/سلبي) في 10 نقاط."
}

// BuildSummaryPrompt formats the headlines for the summarizer the way the
// news feed delivers them: one dashed title per line under the stock name.
func (p *PromptTemplates) BuildSummaryPrompt(displayName string, headlines []models.Headline) string {
	var b strings.Builder
	for i, h := range headlines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + h.Title)
	}
	return fmt.Sprintf("السهم: %s\n\nالأخبار:\n%s", displayName, b.String())
}
