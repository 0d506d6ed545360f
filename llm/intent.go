package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// The closed set of actions the model may emit. Anything outside this set,
// or inside it but malformed, resolves to ActionUnknown.
const (
	ActionAddTransaction     = "add_transaction"
	ActionUpdateBalance      = "update_balance"
	ActionGetBalance         = "get_balance"
	ActionGetReport          = "get_report"
	ActionGetTransactionList = "get_transaction_list"
	ActionGetAnalysis        = "get_analysis"
	ActionSetReminder        = "set_reminder"
	ActionAskQuestion        = "ask_question"
	ActionUnknown            = "unknown"
)

// Report and analysis periods.
const (
	PeriodToday   = "today"
	PeriodWeek    = "week"
	PeriodMonth   = "month"
	PeriodAllTime = "all_time"
)

// BalanceAll is the sentinel account name for "every account".
const BalanceAll = "all"

// Intent is the parsed model reply. Which fields are meaningful depends on
// Action; parseIntent guarantees the required ones for each action are set
// and valid before the intent leaves this package.
type Intent struct {
	Action      string `json:"action"`
	Type        string `json:"type,omitempty"`
	Amount      int64  `json:"amount,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Name        string `json:"name,omitempty"`
	Balance     int64  `json:"balance,omitempty"`
	Period      string `json:"period,omitempty"`
	Time        string `json:"time,omitempty"`
	Message     string `json:"message,omitempty"`
	Question    string `json:"question,omitempty"`
}

var (
	fenceRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")
	timeRe  = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)
)

func unknown() *Intent {
	return &Intent{Action: ActionUnknown}
}

// parseIntent turns raw model text into a validated Intent. It never fails:
// an empty reply, a fenced or unfenced non-JSON reply, or a JSON object that
// misses the schema all come back as ActionUnknown.
func parseIntent(reply string) *Intent {
	text := stripFence(strings.TrimSpace(reply))
	if text == "" {
		return unknown()
	}

	var intent Intent
	if err := json.Unmarshal([]byte(text), &intent); err != nil {
		return unknown()
	}

	switch intent.Action {
	case ActionAddTransaction:
		if !validKind(intent.Type) || intent.Amount <= 0 {
			return unknown()
		}
	case ActionUpdateBalance:
		if strings.TrimSpace(intent.Name) == "" {
			return unknown()
		}
	case ActionGetBalance:
		if strings.TrimSpace(intent.Name) == "" {
			return unknown()
		}
	case ActionGetReport, ActionGetTransactionList:
		if !validReportType(intent.Type) || !validReportPeriod(intent.Period) {
			return unknown()
		}
	case ActionGetAnalysis:
		if !validAnalysisPeriod(intent.Period) {
			return unknown()
		}
	case ActionSetReminder:
		// Only absolute HH:MM clock times; the prompt forbids relative
		// expressions and we reject anything else here.
		if !timeRe.MatchString(intent.Time) || strings.TrimSpace(intent.Message) == "" {
			return unknown()
		}
	case ActionAskQuestion:
		if strings.TrimSpace(intent.Question) == "" {
			return unknown()
		}
	case ActionUnknown:
	default:
		return unknown()
	}
	return &intent
}

// stripFence removes an optional markdown code fence around the model reply.
func stripFence(text string) string {
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return text
}

func validKind(kind string) bool {
	return kind == "expense" || kind == "income"
}

func validReportType(t string) bool {
	return t == "expense" || t == "income" || t == "all"
}

func validReportPeriod(p string) bool {
	return p == PeriodToday || p == PeriodMonth || p == PeriodAllTime
}

func validAnalysisPeriod(p string) bool {
	return p == PeriodToday || p == PeriodWeek || p == PeriodMonth
}
