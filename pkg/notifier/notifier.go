// Package notifier delivers digest emails for newly discovered news.
// One batch makes at most one digest, delivered to each recipient
// independently so a single bad address can't block the rest.
package notifier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/treehi/pogo-tracker/pkg/domain"
)

// Sender delivers a single email to a single recipient
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Notifier builds and sends digest emails
type Notifier struct {
	sender     Sender
	from       string
	defaultTo  []string
	dryRun     bool
	loc        *time.Location
	now        func() time.Time
	digestTmpl *template.Template
}

// Params holds notifier construction parameters
type Params struct {
	Sender    Sender
	From      string
	DefaultTo []string
	DryRun    bool
	Location  *time.Location
}

// New creates a notifier
func New(p Params) *Notifier {
	if p.Location == nil {
		p.Location = time.Local
	}
	return &Notifier{
		sender:     p.Sender,
		from:       p.From,
		defaultTo:  p.DefaultTo,
		dryRun:     p.DryRun,
		loc:        p.Location,
		now:        time.Now,
		digestTmpl: template.Must(template.New("digest").Parse(digestTemplate)),
	}
}

// NotifyBatch sends one digest covering the given items. An empty batch
// sends nothing and reports not-delivered. Nil recipients fall back to the
// configured defaults. Delivery counts as successful when at least one
// recipient accepted the message, the caller marks items notified only then.
func (n *Notifier) NotifyBatch(ctx context.Context, items []domain.NewsItem, recipients []string) (delivered bool, err error) {
	if len(items) == 0 {
		return false, nil
	}

	if recipients == nil {
		recipients = n.defaultTo
	}
	if len(recipients) == 0 {
		return false, fmt.Errorf("no recipients configured")
	}

	subject := n.subject(items)
	body, err := n.renderDigest(items)
	if err != nil {
		return false, fmt.Errorf("render digest: %w", err)
	}

	if n.dryRun {
		lgr.Printf("[INFO] dry run: would send %q to %d recipients, %d items", subject, len(recipients), len(items))
		return true, nil
	}

	var sent int
	var errs []error
	for _, to := range recipients {
		if err := n.sender.Send(ctx, to, subject, body); err != nil {
			lgr.Printf("[WARN] failed to send digest to %s: %v", to, err)
			errs = append(errs, fmt.Errorf("send to %s: %w", to, err))
			continue
		}
		sent++
	}

	if sent == 0 {
		return false, fmt.Errorf("digest delivery failed for all %d recipients: %w", len(recipients), errors.Join(errs...))
	}

	lgr.Printf("[INFO] digest %q delivered to %d/%d recipients", subject, sent, len(recipients))
	return true, nil
}

// subject builds the digest subject with the run date and item count,
// e.g. "[포켓몬GO] 2026년 01월 18일 신규 소식 3건"
func (n *Notifier) subject(items []domain.NewsItem) string {
	now := n.now().In(n.loc)
	return fmt.Sprintf("[포켓몬GO] %04d년 %02d월 %02d일 신규 소식 %d건",
		now.Year(), now.Month(), now.Day(), len(items))
}

// renderDigest renders the HTML digest body
func (n *Notifier) renderDigest(items []domain.NewsItem) (string, error) {
	type entry struct {
		Title    string
		URL      string
		Summary  string
		Category string
		ImageURL string
		Window   string
	}

	data := struct {
		Count   int
		Date    string
		Entries []entry
	}{
		Count: len(items),
		Date:  n.now().In(n.loc).Format("2006-01-02"),
	}

	for _, item := range items {
		e := entry{
			Title:    item.Title,
			URL:      item.URL,
			Summary:  item.Summary,
			Category: item.Category,
			ImageURL: item.ImageURL,
		}
		if item.EventStart != nil && item.EventEnd != nil {
			e.Window = fmt.Sprintf("%s ~ %s",
				item.EventStart.In(n.loc).Format("2006-01-02 15:04"),
				item.EventEnd.In(n.loc).Format("2006-01-02 15:04"))
		}
		data.Entries = append(data.Entries, e)
	}

	var buf bytes.Buffer
	if err := n.digestTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const digestTemplate = `<!DOCTYPE html>
<html lang="ko">
<head><meta charset="utf-8"></head>
<body style="font-family: 'Apple SD Gothic Neo', 'Malgun Gothic', sans-serif; color: #222;">
<h2>포켓몬GO 신규 소식 {{.Count}}건 ({{.Date}})</h2>
{{range .Entries}}
<div style="margin-bottom: 24px; border-bottom: 1px solid #eee; padding-bottom: 16px;">
	<h3 style="margin: 0 0 8px;"><a href="{{.URL}}" style="color: #1a73e8; text-decoration: none;">{{.Title}}</a></h3>
	{{if .ImageURL}}<img src="{{.ImageURL}}" alt="" style="max-width: 480px; border-radius: 8px;"><br>{{end}}
	{{if .Window}}<p style="margin: 8px 0; color: #555;">이벤트 기간: {{.Window}}</p>{{end}}
	{{if .Summary}}<p style="margin: 8px 0;">{{.Summary}}</p>{{end}}
	{{if .Category}}<span style="font-size: 12px; color: #888;">{{.Category}}</span>{{end}}
</div>
{{end}}
</body>
</html>`
