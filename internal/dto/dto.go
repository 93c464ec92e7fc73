// Package dto defines the JSON request and response shapes of the API.
package dto

import "time"

// timeFormat renders timestamps at UTC second precision.
const timeFormat = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}
