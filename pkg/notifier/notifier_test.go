package notifier

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treehi/pogo-tracker/pkg/domain"
)

// recordingSender captures sent emails and fails selected recipients
type recordingSender struct {
	sent []sentEmail
	fail map[string]bool
}

type sentEmail struct {
	to      string
	subject string
	body    string
}

func (r *recordingSender) Send(_ context.Context, to, subject, htmlBody string) error {
	if r.fail[to] {
		return fmt.Errorf("mailbox unavailable")
	}
	r.sent = append(r.sent, sentEmail{to: to, subject: subject, body: htmlBody})
	return nil
}

func makeNotifier(sender Sender, dryRun bool) *Notifier {
	loc, _ := time.LoadLocation("Asia/Seoul")
	n := New(Params{
		Sender:    sender,
		From:      "tracker@example.com",
		DefaultTo: []string{"default@example.com"},
		DryRun:    dryRun,
		Location:  loc,
	})
	n.now = func() time.Time { return time.Date(2026, 1, 18, 10, 0, 0, 0, loc) }
	return n
}

func testItems() []domain.NewsItem {
	loc, _ := time.LoadLocation("Asia/Seoul")
	start := time.Date(2026, 1, 18, 14, 0, 0, 0, loc)
	end := time.Date(2026, 1, 18, 17, 0, 0, 0, loc)
	return []domain.NewsItem{
		{
			ID:         1,
			URL:        "https://pokemongo.com/ko/news/communityday",
			Title:      "2026년 1월 커뮤니티 데이",
			EventStart: &start,
			EventEnd:   &end,
			ImageURL:   "https://pokemongo.com/img/cd.jpg",
			Category:   "뉴스",
		},
		{
			ID:    2,
			URL:   "https://pokemongo.com/ko/news/raid-weekend",
			Title: "레이드 주말",
		},
	}
}

func TestNotifier_NotifyBatch(t *testing.T) {
	t.Run("single digest to explicit recipients", func(t *testing.T) {
		sender := &recordingSender{}
		n := makeNotifier(sender, false)

		delivered, err := n.NotifyBatch(context.Background(), testItems(),
			[]string{"a@example.com", "b@example.com"})
		require.NoError(t, err)
		assert.True(t, delivered)
		require.Len(t, sender.sent, 2, "one email per recipient, same digest")

		assert.Equal(t, "[포켓몬GO] 2026년 01월 18일 신규 소식 2건", sender.sent[0].subject)
		assert.Equal(t, sender.sent[0].body, sender.sent[1].body)
		assert.Contains(t, sender.sent[0].body, "2026년 1월 커뮤니티 데이")
		assert.Contains(t, sender.sent[0].body, "https://pokemongo.com/ko/news/communityday")
		assert.Contains(t, sender.sent[0].body, "2026-01-18 14:00 ~ 2026-01-18 17:00")
	})

	t.Run("empty batch sends nothing", func(t *testing.T) {
		sender := &recordingSender{}
		n := makeNotifier(sender, false)

		delivered, err := n.NotifyBatch(context.Background(), nil, []string{"a@example.com"})
		require.NoError(t, err)
		assert.False(t, delivered)
		assert.Empty(t, sender.sent)
	})

	t.Run("nil recipients use configured defaults", func(t *testing.T) {
		sender := &recordingSender{}
		n := makeNotifier(sender, false)

		delivered, err := n.NotifyBatch(context.Background(), testItems(), nil)
		require.NoError(t, err)
		assert.True(t, delivered)
		require.Len(t, sender.sent, 1)
		assert.Equal(t, "default@example.com", sender.sent[0].to)
	})

	t.Run("one failing recipient does not block the rest", func(t *testing.T) {
		sender := &recordingSender{fail: map[string]bool{"bad@example.com": true}}
		n := makeNotifier(sender, false)

		delivered, err := n.NotifyBatch(context.Background(), testItems(),
			[]string{"bad@example.com", "good@example.com"})
		require.NoError(t, err)
		assert.True(t, delivered, "partial delivery still counts")
		require.Len(t, sender.sent, 1)
		assert.Equal(t, "good@example.com", sender.sent[0].to)
	})

	t.Run("all recipients failing reports not delivered", func(t *testing.T) {
		sender := &recordingSender{fail: map[string]bool{"bad@example.com": true}}
		n := makeNotifier(sender, false)

		delivered, err := n.NotifyBatch(context.Background(), testItems(), []string{"bad@example.com"})
		require.Error(t, err)
		assert.False(t, delivered)
	})

	t.Run("dry run skips sending but reports delivered", func(t *testing.T) {
		sender := &recordingSender{}
		n := makeNotifier(sender, true)

		delivered, err := n.NotifyBatch(context.Background(), testItems(), []string{"a@example.com"})
		require.NoError(t, err)
		assert.True(t, delivered, "dry run marks items notified so they don't pile up")
		assert.Empty(t, sender.sent)
	})
}
