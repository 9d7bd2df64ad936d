package styles

import (
	"fmt"
	"time"

	"github.com/bnema/bezier/internal/domain/entity"
)

// VisitBadge renders a visit count badge.
func (t *Theme) VisitBadge(count int64) string {
	text := fmt.Sprintf("%d visits", count)
	if count == 1 {
		text = "1 visit"
	}
	return t.BadgeMuted.Render(text)
}

// AccentBadge renders a badge with accent color.
func (t *Theme) AccentBadge(text string) string {
	return t.Badge.Render(text)
}

// MutedBadge renders a badge with muted colors.
func (t *Theme) MutedBadge(text string) string {
	return t.BadgeMuted.Render(text)
}

// StatusBadge colors a download status.
func (t *Theme) StatusBadge(status entity.DownloadStatus) string {
	style := t.BadgeMuted
	switch status {
	case entity.DownloadCompleted:
		style = style.Foreground(t.Background).Background(t.Success)
	case entity.DownloadError:
		style = style.Foreground(t.Background).Background(t.Error)
	case entity.DownloadPaused:
		style = style.Foreground(t.Background).Background(t.Warning)
	case entity.DownloadDownloading:
		style = t.Badge
	}
	return style.Render(string(status))
}

// RelativeTime formats a time relative to now.
func RelativeTime(tm time.Time) string {
	return relativeTo(tm, time.Now())
}

func relativeTo(tm, now time.Time) string {
	if tm.IsZero() {
		return "never"
	}
	diff := now.Sub(tm)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return tm.Format("Jan 2, 2006")
	}
}

// FormatBytes renders a byte count with a binary unit.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
