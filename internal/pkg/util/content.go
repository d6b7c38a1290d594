package util

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

const SummaryMaxRunes = 280

var (
	strictPolicy = bluemonday.StrictPolicy()
	ugcPolicy    = bluemonday.UGCPolicy()
)

func init() {
	ugcPolicy.AllowImages()
	ugcPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	ugcPolicy.RequireNoReferrerOnLinks(true)
}

// SanitizeComment 评论只保留纯文本，结果已去掉首尾空白
func SanitizeComment(raw string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(raw))
}

// SanitizeContent 正文允许常见富文本标签
func SanitizeContent(raw string) string {
	return ugcPolicy.Sanitize(raw)
}

// PlainText 去掉标签并压缩空白
func PlainText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	text := html
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		text = doc.Text()
	}
	return strings.Join(strings.Fields(text), " ")
}

// ExtractSummary 取 HTML 的纯文本并截断
func ExtractSummary(html string) string {
	text := PlainText(html)
	if utf8.RuneCountInString(text) <= SummaryMaxRunes {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:SummaryMaxRunes])) + "…"
}

// Slugify 标题转 slug，附加短 uuid 保证唯一
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case r > utf8.RuneSelf && !strings.ContainsRune("，。！？、；：", r):
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}

	base := strings.Trim(b.String(), "-")
	if runes := []rune(base); len(runes) > 80 {
		base = strings.Trim(string(runes[:80]), "-")
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
