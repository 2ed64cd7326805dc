package crawl

import "fmt"

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatProgress renders one progress event as a status line, or "" when
// the event carries nothing worth printing.
func FormatProgress(verb string, ev ProgressEvent) string {
	switch ev.Type {
	case ProgressStarted:
		return fmt.Sprintf("%s %d pages", verb, ev.Total)
	case ProgressCompleted:
		return fmt.Sprintf("[%d/%d] %s", ev.Completed, ev.Total, TruncateURL(ev.Name, 50))
	case ProgressFailed:
		return fmt.Sprintf("[%d/%d] %s: FAILED: %v", ev.Completed, ev.Total, TruncateURL(ev.Name, 50), ev.Error)
	default:
		return ""
	}
}
