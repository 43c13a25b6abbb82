package models

import "time"

// Certificate holds the extracted award fields attached to an uploaded
// certificate file ('certificate_info' table). Rows start as drafts and are
// flipped to submitted by the owning application.
type Certificate struct {
	CertID             int64      `json:"certId" db:"cert_id"`
	UserID             int64      `json:"userId" db:"user_id"`
	FileID             int64      `json:"fileId" db:"file_id"`
	StudentCollege     string     `json:"studentCollege" db:"student_college"`
	CompetitionProject string     `json:"competitionProject" db:"competition_project"`
	StudentID          string     `json:"studentId" db:"student_id"`
	StudentName        string     `json:"studentName" db:"student_name"`
	AwardCategory      string     `json:"awardCategory" db:"award_category"` // national, provincial
	AwardLevel         string     `json:"awardLevel" db:"award_level"`       // first prize, second prize, ...
	CompetitionType    string     `json:"competitionType" db:"competition_type"`
	Organizer          string     `json:"organizer" db:"organizer"`
	AwardTime          string     `json:"awardTime" db:"award_time"`
	TutorName          string     `json:"tutorName" db:"tutor_name"`
	IsSubmitted        bool       `json:"isSubmitted" db:"is_submitted"`
	SubmitTime         *time.Time `json:"submitTime,omitempty" db:"submit_time"`
	CreatedAt          time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time  `json:"updatedAt" db:"updated_at"`
}
