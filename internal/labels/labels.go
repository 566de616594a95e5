package labels

import (
	"time"

	"golang.org/x/text/language"
)

// Tier is the presentation class of a status or result badge.
type Tier string

const (
	TierPrimary Tier = "primary"
	TierWarning Tier = "warning"
	TierSuccess Tier = "success"
	TierDanger  Tier = "danger"
	TierInfo    Tier = "info"
)

// status and result codes share one tier table
var tiers = map[string]Tier{
	"scheduled":   TierPrimary,
	"in_progress": TierWarning,
	"completed":   TierSuccess,
	"cancelled":   TierDanger,
	"passed":      TierSuccess,
	"rejected":    TierDanger,
	"pending":     TierInfo,
	"offer":       TierSuccess,
	"declined":    TierDanger,
}

// StatusTier maps a status or result code to its tier. Unknown codes are
// neutral.
func StatusTier(code string) Tier {
	if t, ok := tiers[code]; ok {
		return t
	}
	return TierInfo
}

// Table holds the display strings for one language.
type Table struct {
	tag      language.Tag
	status   map[string]string
	result   map[string]string
	method   map[string]string
	round    map[string]string
	dateTime string
}

var zh = &Table{
	tag: language.Chinese,
	status: map[string]string{
		"scheduled":   "已安排",
		"in_progress": "面试中",
		"completed":   "已完成",
		"cancelled":   "已取消",
	},
	result: map[string]string{
		"pending":  "待定",
		"passed":   "通过",
		"rejected": "未通过",
		"offer":    "发放Offer",
		"declined": "已拒绝",
	},
	method: map[string]string{
		"phone":  "电话面试",
		"video":  "视频面试",
		"onsite": "现场面试",
	},
	round: map[string]string{
		"first":  "初试",
		"second": "二面",
		"third":  "三面",
		"final":  "终面",
		"other":  "其他轮次",
	},
	dateTime: "2006/1/2 15:04:05",
}

var en = &Table{
	tag: language.English,
	status: map[string]string{
		"scheduled":   "Scheduled",
		"in_progress": "In progress",
		"completed":   "Completed",
		"cancelled":   "Cancelled",
	},
	result: map[string]string{
		"pending":  "Pending",
		"passed":   "Passed",
		"rejected": "Rejected",
		"offer":    "Offer",
		"declined": "Declined",
	},
	method: map[string]string{
		"phone":  "Phone",
		"video":  "Video",
		"onsite": "On-site",
	},
	round: map[string]string{
		"first":  "First round",
		"second": "Second round",
		"third":  "Third round",
		"final":  "Final round",
		"other":  "Other",
	},
	dateTime: "Jan 2, 2006 15:04:05",
}

// the first entry is the fallback
var (
	tables  = []*Table{zh, en}
	matcher = language.NewMatcher([]language.Tag{zh.tag, en.tag})
)

// For picks the table best matching lang, e.g. "en", "en-GB", "zh-CN".
// Anything unrecognised gets Chinese.
func For(lang string) *Table {
	_, idx := language.MatchStrings(matcher, lang)
	return tables[idx]
}

// Default is the Chinese table.
func Default() *Table {
	return zh
}

func (t *Table) Tag() language.Tag {
	return t.tag
}

func lookup(m map[string]string, code string) string {
	if s, ok := m[code]; ok {
		return s
	}
	return code
}

// StatusLabel returns the status or result label, echoing unknown codes.
func (t *Table) StatusLabel(code string) string {
	if s, ok := t.status[code]; ok {
		return s
	}
	return lookup(t.result, code)
}

// ResultLabel returns the result label, echoing unknown codes.
func (t *Table) ResultLabel(code string) string {
	return lookup(t.result, code)
}

func (t *Table) MethodLabel(code string) string {
	return lookup(t.method, code)
}

func (t *Table) RoundLabel(code string) string {
	return lookup(t.round, code)
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// FormatDateTime renders a backend timestamp in local time. Empty input
// gives an empty string; unparseable input is returned as is.
func (t *Table) FormatDateTime(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if v, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return v.In(time.Local).Format(t.dateTime)
		}
	}
	return s
}

func StatusLabel(code string) string { return zh.StatusLabel(code) }

func ResultLabel(code string) string { return zh.ResultLabel(code) }
