package models

import (
	"time"
)

type CourseCategory string

const (
	CategoryBusiness            CourseCategory = "business"
	CategoryDevelopment         CourseCategory = "development"
	CategoryPersonalDevelopment CourseCategory = "personal_development"
)

type TrackerProfile string

const (
	ProfileAuthor  TrackerProfile = "author"
	ProfileLearner TrackerProfile = "learner"
)

type Course struct {
	ID          string         `json:"id" gorm:"primaryKey;size:100"`
	Name        string         `json:"name" gorm:"not null;size:250" validate:"required,max=250"`
	Category    CourseCategory `json:"category" gorm:"not null;size:250;index" validate:"required,course_category"`
	Subcategory string         `json:"subcategory" gorm:"not null;size:250" validate:"required,max=250"`
	Description string         `json:"description" gorm:"type:text;not null" validate:"required"`

	CreatedAt time.Time `json:"created_at"`

	// Relations (cascade from Course)
	Trackers  []CourseTracker   `json:"trackers,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Feedback  []StudentFeedback `json:"feedback,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Materials []CourseMaterial  `json:"materials,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseTracker links an identity to a course as its author or as a learner.
// Exactly one author link exists per course; learner links carry a block flag
// the author can flip.
type CourseTracker struct {
	ID        string         `json:"id" gorm:"primaryKey;size:100"`
	UserID    string         `json:"user_id" gorm:"index;not null;size:100"`
	CourseID  string         `json:"course_id" gorm:"index;not null;size:100"`
	Profile   TrackerProfile `json:"profile" gorm:"not null;size:50;check:profile IN ('author','learner')" validate:"required,tracker_profile"`
	IsBlocked bool           `json:"is_blocked" gorm:"not null;default:false"`
	CreatedAt time.Time      `json:"created_at"`

	User   User   `json:"user" gorm:"foreignKey:UserID"`
	Course Course `json:"course" gorm:"foreignKey:CourseID"`
}

func (CourseTracker) TableName() string {
	return "course_trackers"
}

type StudentFeedback struct {
	ID        string    `json:"id" gorm:"primaryKey;size:100"`
	StudentID string    `json:"student_id" gorm:"index;not null;size:100"`
	CourseID  string    `json:"course_id" gorm:"index;not null;size:100"`
	Feedback  string    `json:"feedback" gorm:"type:text;not null" validate:"required"`
	CreatedAt time.Time `json:"created_at"`

	Student User `json:"student" gorm:"foreignKey:StudentID"`
}

func (StudentFeedback) TableName() string {
	return "student_feedback"
}

// CourseMaterial is a titled content item on a course. Upload is the
// media-relative path of an optional attachment; empty means none.
type CourseMaterial struct {
	ID       string `json:"id" gorm:"primaryKey;size:100"`
	Title    string `json:"title" gorm:"not null;size:250" validate:"required,max=250"`
	Content  string `json:"content" gorm:"type:text;not null" validate:"required"`
	Upload   string `json:"upload,omitempty" gorm:"size:250"`
	Duration int    `json:"duration" gorm:"not null" validate:"required,min=1"`
	CourseID string `json:"course_id" gorm:"index;not null;size:100"`
}

func (CourseMaterial) TableName() string {
	return "course_materials"
}
