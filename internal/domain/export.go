package domain

import "time"

// ScheduleExport describes a schedule report uploaded to object storage.
// The file itself lives in S3; DownloadURL is a temporary presigned link.
type ScheduleExport struct {
	ScheduleID  string    `json:"scheduleId"`
	ObjectKey   string    `json:"objectKey"`
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
