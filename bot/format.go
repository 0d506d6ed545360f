package bot

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mahdizzzz/finance-app/llm"
	"github.com/mahdizzzz/finance-app/models"
)

var printer = message.NewPrinter(language.English)

// formatAmount renders an amount in Tomans with thousands separators.
func formatAmount(n int64) string {
	return printer.Sprintf("%d تومان", n)
}

func kindLabel(kind string) string {
	if kind == models.KindIncome {
		return "درآمد"
	}
	return "هزینه"
}

func periodLabel(period string) string {
	switch period {
	case llm.PeriodToday:
		return "امروز"
	case llm.PeriodWeek:
		return "هفت روز اخیر"
	case llm.PeriodMonth:
		return "این ماه"
	default:
		return "کل دوره"
	}
}

var expenseCategories = map[string]string{
	"food":          "خوراک",
	"transport":     "حمل‌ونقل",
	"shopping":      "خرید",
	"bills":         "قبوض",
	"health":        "سلامت",
	"entertainment": "تفریح",
	"other":         "متفرقه",
}

var incomeCategories = map[string]string{
	"salary":     "حقوق",
	"gift":       "هدیه",
	"investment": "سرمایه‌گذاری",
	"other":      "متفرقه",
}

// normalizeCategory keeps a model-supplied category only when it belongs to
// the enumerated set for that kind; everything else becomes "other".
func normalizeCategory(kind, category string) string {
	set := expenseCategories
	if kind == models.KindIncome {
		set = incomeCategories
	}
	if _, ok := set[category]; ok {
		return category
	}
	return "other"
}

func categoryLabel(category string) string {
	if label, ok := expenseCategories[category]; ok {
		return label
	}
	if label, ok := incomeCategories[category]; ok {
		return label
	}
	return category
}
