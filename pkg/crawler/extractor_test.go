package crawler

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func makeExtractor(t *testing.T, fetcher DocumentFetcher) *Extractor {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)
	e, err := NewExtractor(ExtractorParams{
		Fetcher:     fetcher,
		BaseURL:     "https://pokemongo.com/ko/news",
		PathPrefix:  "/ko/news/",
		Category:    "뉴스",
		MaxParallel: 2,
		Location:    loc,
	})
	require.NoError(t, err)
	e.now = func() time.Time { return time.Date(2026, 1, 10, 9, 0, 0, 0, loc) }
	return e
}

func TestExtractor_ArticleStrategy(t *testing.T) {
	e := makeExtractor(t, nil)

	doc := makeDoc(t, `
		<html><body>
			<article>
				<h2>2026년 1월 커뮤니티 데이</h2>
				<a href="/ko/news/communityday-january-2026"><img src="//cdn.pokemongo.com/cd.jpg">자세히</a>
			</article>
			<article>
				<h2>레이드 주말 안내</h2>
				<a href="/ko/news/raid-weekend-jan-2026">자세히</a>
			</article>
			<article>
				<h2>관련 없는 글</h2>
				<a href="/ko/blog/unrelated">블로그</a>
			</article>
		</body></html>`)

	candidates := e.Extract(doc)
	require.Len(t, candidates, 2)

	assert.Equal(t, "2026년 1월 커뮤니티 데이", candidates[0].Title)
	assert.Equal(t, "https://pokemongo.com/ko/news/communityday-january-2026", candidates[0].URL)
	assert.Equal(t, "https://cdn.pokemongo.com/cd.jpg", candidates[0].ImageURL)
	assert.Equal(t, "뉴스", candidates[0].Category)
	assert.Equal(t, 2026, candidates[0].Published.Year())
	assert.Equal(t, time.January, candidates[0].Published.Month())

	assert.Equal(t, "레이드 주말 안내", candidates[1].Title)
	assert.Empty(t, candidates[1].ImageURL)
}

func TestExtractor_LinkScanFallback(t *testing.T) {
	e := makeExtractor(t, nil)

	// no article containers or card classes, raw links only
	doc := makeDoc(t, `
		<html><body>
			<div><a href="/ko/news/season-of-lights-2026">빛의 시즌이 시작됩니다</a></div>
			<div><a href="https://pokemongo.com/ko/news/go-battle-league-update">GO 배틀리그 업데이트</a></div>
			<div><a href="/ko/news/too-deep/nested">중첩 경로는 제외</a></div>
			<div><a href="https://other-site.com/ko/news/external-host">외부 호스트 제외</a></div>
		</body></html>`)

	candidates := e.Extract(doc)
	require.Len(t, candidates, 2)
	assert.Equal(t, "https://pokemongo.com/ko/news/season-of-lights-2026", candidates[0].URL)
	assert.Equal(t, "https://pokemongo.com/ko/news/go-battle-league-update", candidates[1].URL)
}

func TestExtractor_Validation(t *testing.T) {
	e := makeExtractor(t, nil)

	doc := makeDoc(t, `
		<html><body>
			<div><a href="/ko/news/short-title">짧음</a></div>
			<div><a href="/ko/news/good-article">충분히 긴 제목입니다</a></div>
			<div><a href="/ko/news/good-article">충분히 긴 제목입니다</a></div>
		</body></html>`)

	candidates := e.Extract(doc)
	require.Len(t, candidates, 1, "short titles dropped, duplicates collapsed")
	assert.Equal(t, "충분히 긴 제목입니다", candidates[0].Title)
}

func TestExtractor_EmptyPage(t *testing.T) {
	e := makeExtractor(t, nil)
	candidates := e.Extract(makeDoc(t, `<html><body><p>점검 중입니다</p></body></html>`))
	assert.Empty(t, candidates)
}

// fakeFetcher serves canned detail pages keyed by URL
type fakeFetcher struct {
	pages map[string]string
	fail  map[string]bool
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*goquery.Document, error) {
	if f.fail[url] {
		return nil, assert.AnError
	}
	return goquery.NewDocumentFromReader(strings.NewReader(f.pages[url]))
}

func TestExtractor_FillEventWindows(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[string]string{
			"https://pokemongo.com/ko/news/communityday-january-2026": `<html><body>
				<p>한국시간 2026년 1월 18일 14:00부터 17:00까지 진행됩니다.</p></body></html>`,
			"https://pokemongo.com/ko/news/no-dates": `<html><body><p>일정 미정</p></body></html>`,
		},
		fail: map[string]bool{"https://pokemongo.com/ko/news/broken": true},
	}
	e := makeExtractor(t, fetcher)

	doc := makeDoc(t, `
		<html><body>
			<div><a href="/ko/news/communityday-january-2026">2026년 1월 커뮤니티 데이</a></div>
			<div><a href="/ko/news/no-dates">일정이 없는 이벤트 소식</a></div>
			<div><a href="/ko/news/broken">상세 페이지가 깨진 소식</a></div>
		</body></html>`)

	candidates := e.Extract(doc)
	require.Len(t, candidates, 3)

	e.FillEventWindows(context.Background(), candidates)

	loc := candidates[0].Published.Location()
	require.NotNil(t, candidates[0].Window)
	assert.Equal(t, time.Date(2026, 1, 18, 14, 0, 0, 0, loc), candidates[0].Window.Start)
	assert.Equal(t, time.Date(2026, 1, 18, 17, 0, 0, 0, loc), candidates[0].Window.End)

	assert.Nil(t, candidates[1].Window, "detail page without dates leaves window unset")
	assert.Nil(t, candidates[2].Window, "failed detail fetch leaves window unset")
}
