package video

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const atomFeedTmpl = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015" xmlns:media="http://search.yahoo.com/mrss/" xmlns="http://www.w3.org/2005/Atom">
	<title>%s</title>
	%s
</feed>`

func atomEntry(id, title, published, description string) string {
	return fmt.Sprintf(`<entry>
		<id>yt:video:%s</id>
		<yt:videoId>%s</yt:videoId>
		<title>%s</title>
		<link rel="alternate" href="https://www.youtube.com/watch?v=%s"/>
		<published>%s</published>
		<media:group>
			<media:title>%s</media:title>
			<media:description>%s</media:description>
		</media:group>
	</entry>`, id, id, title, id, published, title, description)
}

func serveFeed(t *testing.T, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestFetcher_FetchAll(t *testing.T) {
	now := time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)

	entries := strings.Join([]string{
		atomEntry("vid-recent-1", "Great League guide", "2026-01-19T10:00:00+00:00", "최신 영상"),
		atomEntry("vid-recent-2", "레이드 공략", "2026-01-18T10:00:00+00:00", "&lt;b&gt;굵은&lt;/b&gt; 설명 &amp; 링크"),
		atomEntry("vid-boundary", "exactly at lookback", "2026-01-06T10:00:00+00:00", "경계"),
		atomEntry("vid-too-old", "ancient video", "2025-12-01T10:00:00+00:00", "오래됨"),
	}, "\n")
	ts := serveFeed(t, fmt.Sprintf(atomFeedTmpl, "포고 채널", entries))

	f := NewFetcher(Params{
		Feeds:      []string{ts.URL + "/feeds/videos.xml?channel_id=UCtest123"},
		Timeout:    5 * time.Second,
		UserAgent:  "test-agent/1.0",
		Lookback:   14 * 24 * time.Hour,
		MaxResults: 50,
	})
	f.now = func() time.Time { return now }

	videos, err := f.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, videos, 2, "boundary and older entries filtered out")

	v := videos[0]
	assert.Equal(t, "vid-recent-1", v.VideoID)
	assert.Equal(t, "Great League guide", v.Title)
	assert.Equal(t, "포고 채널", v.ChannelName)
	assert.Equal(t, "UCtest123", v.ChannelID)
	assert.Equal(t, "https://i.ytimg.com/vi/vid-recent-1/hqdefault.jpg", v.ThumbnailURL)
	assert.Equal(t, "https://www.youtube.com/watch?v=vid-recent-1", v.VideoURL)
	assert.Equal(t, 0, v.ViewCount)
	assert.Equal(t, []string{"Great League", "Guide"}, v.Tags)

	assert.Equal(t, "vid-recent-2", videos[1].VideoID, "sorted newest first")
	assert.Equal(t, "굵은 설명 & 링크", videos[1].Description, "html stripped from description")
}

func TestFetcher_FetchAllTagsFromDescription(t *testing.T) {
	now := time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)

	// title alone carries no keywords, they all live in the description
	entry := atomEntry("vid-desc-tags", "오늘의 영상입니다", "2026-01-19T10:00:00+00:00",
		"best raid counters and pvp guide for this week")
	ts := serveFeed(t, fmt.Sprintf(atomFeedTmpl, "포고 채널", entry))

	f := NewFetcher(Params{
		Feeds:      []string{ts.URL + "/feeds/videos.xml?channel_id=UCtest123"},
		Timeout:    5 * time.Second,
		Lookback:   14 * 24 * time.Hour,
		MaxResults: 50,
	})
	f.now = func() time.Time { return now }

	videos, err := f.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, []string{"PvP", "Raid", "Guide"}, videos[0].Tags)
}

func TestFetcher_FetchAllMaxResults(t *testing.T) {
	var entries []string
	for i := 0; i < 5; i++ {
		entries = append(entries, atomEntry(fmt.Sprintf("vid-%d", i), fmt.Sprintf("video number %d", i),
			fmt.Sprintf("2026-01-%02dT10:00:00+00:00", 10+i), "설명"))
	}
	ts := serveFeed(t, fmt.Sprintf(atomFeedTmpl, "채널", strings.Join(entries, "\n")))

	f := NewFetcher(Params{
		Feeds:      []string{ts.URL},
		Timeout:    5 * time.Second,
		UserAgent:  "test-agent/1.0",
		Lookback:   14 * 24 * time.Hour,
		MaxResults: 3,
	})
	f.now = func() time.Time { return time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC) }

	videos, err := f.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, videos, 3)
	assert.Equal(t, "vid-4", videos[0].VideoID, "newest kept when capped")
}

func TestFetcher_FetchAllBadFeedSkipped(t *testing.T) {
	good := serveFeed(t, fmt.Sprintf(atomFeedTmpl, "좋은 채널",
		atomEntry("vid-ok", "working video", "2026-01-19T10:00:00+00:00", "ok")))
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(bad.Close)

	f := NewFetcher(Params{
		Feeds:      []string{bad.URL, good.URL},
		Timeout:    5 * time.Second,
		UserAgent:  "test-agent/1.0",
		Lookback:   14 * 24 * time.Hour,
		MaxResults: 50,
	})
	f.now = func() time.Time { return time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC) }

	videos, err := f.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, videos, 1, "unreachable feed skipped, good feed still collected")
	assert.Equal(t, "vid-ok", videos[0].VideoID)
}

func TestFetcher_DescriptionTruncation(t *testing.T) {
	long := strings.Repeat("가", 600)
	ts := serveFeed(t, fmt.Sprintf(atomFeedTmpl, "채널",
		atomEntry("vid-long", "long description video", "2026-01-19T10:00:00+00:00", long)))

	f := NewFetcher(Params{
		Feeds:      []string{ts.URL},
		Timeout:    5 * time.Second,
		UserAgent:  "test-agent/1.0",
		Lookback:   14 * 24 * time.Hour,
		MaxResults: 50,
	})
	f.now = func() time.Time { return time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC) }

	videos, err := f.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, strings.Repeat("가", 500)+"...", videos[0].Description)
}

func TestChannelIDFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"query parameter", "https://www.youtube.com/feeds/videos.xml?channel_id=UCabc", "UCabc"},
		{"channel path", "https://www.youtube.com/channel/UCxyz/feed", "UCxyz"},
		{"no channel info", "https://example.com/feed.xml", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, channelIDFromURL(tt.url))
		})
	}
}
