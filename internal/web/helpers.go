package web

import (
	"html"
	"strconv"
	"time"
)

func esc(value string) string {
	return html.EscapeString(value)
}

func itoa(value int) string {
	return strconv.Itoa(value)
}

func formatPercent(value float64) string {
	return strconv.FormatFloat(value, 'f', 1, 64)
}

func formatDate(value time.Time) string {
	return value.Format("Jan 2, 2006")
}
