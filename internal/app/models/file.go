package models

import "time"

// File represents an uploaded-file record in the 'files' table. Every file
// belongs to exactly one user; rows are removed when the owning user is
// deleted (ON DELETE CASCADE).
type File struct {
	FileID     int64     `json:"fileId" db:"file_id"`
	UserID     int64     `json:"userId" db:"user_id"`
	FileName   string    `json:"fileName" db:"file_name"`
	FilePath   string    `json:"filePath" db:"file_path"`
	FileType   FileType  `json:"fileType" db:"file_type"`
	FileSize   int64     `json:"fileSize" db:"file_size"` // bytes
	UploadTime time.Time `json:"uploadTime" db:"upload_time"`
}
