package utils

import "time"

// TimeLayout is the timestamp format stored in created_at/updated_at.
const TimeLayout = "2006-01-02 15:04:05"

// NowStamp returns the current time in the stored timestamp format.
func NowStamp() string {
	return time.Now().Format(TimeLayout)
}
