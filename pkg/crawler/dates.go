package crawler

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/treehi/pogo-tracker/pkg/domain"
)

// the list view omits publish dates entirely, so we estimate them from the
// URL slug and the title text. Korean titles like "2026년 1월 커뮤니티 데이"
// are the most reliable signal and win over slug-derived values.

var (
	slugYearRe       = regexp.MustCompile(`-(\d{4})(?:\D|$)`)
	titleYearMonthRe = regexp.MustCompile(`(\d{4})년\s*(\d{1,2})월`)
	titleYearRe      = regexp.MustCompile(`(\d{4})년`)
	titleMonthRe     = regexp.MustCompile(`(\d{1,2})월`)
)

// slugMonths maps English month names embedded in slugs, full names first so
// a full match is preferred over its abbreviation
var slugMonths = []struct {
	name  string
	month time.Month
}{
	{"january", time.January}, {"february", time.February}, {"march", time.March},
	{"april", time.April}, {"june", time.June}, {"july", time.July},
	{"august", time.August}, {"september", time.September}, {"october", time.October},
	{"november", time.November}, {"december", time.December},
	{"jan", time.January}, {"feb", time.February}, {"mar", time.March},
	{"apr", time.April}, {"may", time.May}, {"jun", time.June}, {"jul", time.July},
	{"aug", time.August}, {"sep", time.September}, {"oct", time.October},
	{"nov", time.November}, {"dec", time.December},
}

// publishedAt estimates a publish date from the URL slug and title text.
// Resolution order: slug year + slug month name, overridden by a Korean
// "YYYY년 MM월" title pattern, then year-only, then month-only (current
// year assumed). With nothing to go on it returns now.
func publishedAt(slug, title string, now time.Time, loc *time.Location) time.Time {
	var year int
	var month time.Month

	// year from slug, e.g. /ko/news/communityday-january-2026
	if m := slugYearRe.FindStringSubmatch(slug); m != nil {
		if y, err := strconv.Atoi(m[1]); err == nil && y >= 2020 && y <= 2030 {
			year = y
		}
	}

	// month name from slug
	slugLower := strings.ToLower(slug)
	for _, sm := range slugMonths {
		if strings.Contains(slugLower, sm.name) {
			month = sm.month
			break
		}
	}

	// title patterns override slug-derived values
	if m := titleYearMonthRe.FindStringSubmatch(title); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		if mo >= 1 && mo <= 12 {
			year, month = y, time.Month(mo)
		}
	} else if m := titleYearRe.FindStringSubmatch(title); m != nil {
		y, _ := strconv.Atoi(m[1])
		year = y
	}

	if month == 0 {
		if m := titleMonthRe.FindStringSubmatch(title); m != nil {
			if mo, _ := strconv.Atoi(m[1]); mo >= 1 && mo <= 12 {
				month = time.Month(mo)
			}
		}
	}

	switch {
	case year != 0 && month != 0:
		return time.Date(year, month, 1, 0, 0, 0, 0, loc)
	case year != 0:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	case month != 0:
		return time.Date(now.Year(), month, 1, 0, 0, 0, 0, loc)
	}
	return now
}

// event window patterns found in detail page text, most to least specific:
//   - "한국시간 2026년 1월 18일 14:00부터 17:00까지" (same day)
//   - "2025년 12월 31일 10:00부터 2026년 1월 4일 20:00까지" (cross day)
//   - "1월 18일 ... 1월 20일" (bare dates, current year assumed)
var (
	windowSameDayRe  = regexp.MustCompile(`(?:한국시간\s*)?(\d{4})년\s*(\d{1,2})월\s*(\d{1,2})일\s*(\d{1,2}):(\d{2})부터\s*(\d{1,2}):(\d{2})까지`)
	windowCrossDayRe = regexp.MustCompile(`(\d{4})년\s*(\d{1,2})월\s*(\d{1,2})일\s*(\d{1,2}):(\d{2})부터\s*(\d{4})년\s*(\d{1,2})월\s*(\d{1,2})일\s*(\d{1,2}):(\d{2})까지`)
	windowBareRe     = regexp.MustCompile(`(\d{1,2})월\s*(\d{1,2})일.*?(\d{1,2})월\s*(\d{1,2})일`)
)

// eventWindow scans detail page text for an event start/end range.
// First matching pattern wins, no match returns nil which is not an error.
func eventWindow(text string, now time.Time, loc *time.Location) *domain.EventWindow {
	if m := windowSameDayRe.FindStringSubmatch(text); m != nil {
		n := atoiAll(m[1:])
		return &domain.EventWindow{
			Start: time.Date(n[0], time.Month(n[1]), n[2], n[3], n[4], 0, 0, loc),
			End:   time.Date(n[0], time.Month(n[1]), n[2], n[5], n[6], 0, 0, loc),
		}
	}

	if m := windowCrossDayRe.FindStringSubmatch(text); m != nil {
		n := atoiAll(m[1:])
		return &domain.EventWindow{
			Start: time.Date(n[0], time.Month(n[1]), n[2], n[3], n[4], 0, 0, loc),
			End:   time.Date(n[5], time.Month(n[6]), n[7], n[8], n[9], 0, 0, loc),
		}
	}

	if m := windowBareRe.FindStringSubmatch(text); m != nil {
		n := atoiAll(m[1:])
		return &domain.EventWindow{
			Start: time.Date(now.Year(), time.Month(n[0]), n[1], 0, 0, 0, 0, loc),
			End:   time.Date(now.Year(), time.Month(n[2]), n[3], 0, 0, 0, 0, loc),
		}
	}

	return nil
}

func atoiAll(ss []string) []int {
	out := make([]int, len(ss))
	for i, s := range ss {
		out[i], _ = strconv.Atoi(s) // submatches are \d groups, can't fail
	}
	return out
}
