package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Experience struct {
	Title       FlexString `json:"title"`
	Company     FlexString `json:"company"`
	Duration    FlexString `json:"duration,omitempty"`
	Description FlexString `json:"description,omitempty"`
}

type Education struct {
	Degree      FlexString `json:"degree"`
	Institution FlexString `json:"institution"`
	Year        FlexString `json:"year,omitempty"`
	Grade       FlexString `json:"grade,omitempty"`
}

// Project carries the deployment URL matched from the resume's link footer, if any.
type Project struct {
	Name         FlexString `json:"name"`
	Description  FlexString `json:"description,omitempty"`
	Technologies StringList `json:"technologies"`
	Link         FlexString `json:"link,omitempty"`
}

type Publication struct {
	Title FlexString `json:"title"`
	Venue FlexString `json:"venue,omitempty"`
	Year  FlexString `json:"year,omitempty"`
}

type Volunteer struct {
	Role         FlexString `json:"role"`
	Organization FlexString `json:"organization"`
	Duration     FlexString `json:"duration,omitempty"`
}

// Profile is the structured data extracted from one resume upload. It is
// written once and never updated; a new upload replaces it.
type Profile struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID   string    `gorm:"type:text;not null;index" json:"user_id"`
	JobRole  string    `gorm:"type:text" json:"job_role"`
	FullName string    `gorm:"type:text" json:"full_name"`

	Email     *string `gorm:"type:text" json:"email"`
	Phone     *string `gorm:"type:text" json:"phone"`
	LinkedIn  *string `gorm:"type:text" json:"linkedin"`
	GitHub    *string `gorm:"type:text" json:"github"`
	Portfolio *string `gorm:"type:text" json:"portfolio"`

	Skills         datatypes.JSONSlice[string]      `json:"skills"`
	Experience     datatypes.JSONSlice[Experience]  `json:"experience"`
	Education      datatypes.JSONSlice[Education]   `json:"education"`
	Certifications datatypes.JSONSlice[string]      `json:"certifications"`
	Projects       datatypes.JSONSlice[Project]     `json:"projects"`
	Achievements   datatypes.JSONSlice[string]      `json:"achievements"`
	Languages      datatypes.JSONSlice[string]      `json:"languages"`
	Publications   datatypes.JSONSlice[Publication] `json:"publications"`
	Volunteer      datatypes.JSONSlice[Volunteer]   `json:"volunteer"`

	AdditionalSections datatypes.JSONMap `json:"additional_sections"`
	Summary            *string           `gorm:"type:text" json:"summary"`

	RawText    string    `gorm:"type:text" json:"raw_text"`
	Filename   string    `gorm:"type:text" json:"filename"`
	FilePath   string    `gorm:"type:text" json:"file_path"`
	FileSize   int64     `json:"file_size"`
	UploadedAt time.Time `gorm:"index" json:"uploaded_at"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// NewEmptyProfile returns a profile with every sequence present and empty.
func NewEmptyProfile() *Profile {
	p := &Profile{}
	p.Normalize()
	return p
}

// Normalize replaces nil sequences with empty ones so the stored document
// never holds JSON null for a list field.
func (p *Profile) Normalize() {
	if p.Skills == nil {
		p.Skills = datatypes.JSONSlice[string]{}
	}
	if p.Experience == nil {
		p.Experience = datatypes.JSONSlice[Experience]{}
	}
	if p.Education == nil {
		p.Education = datatypes.JSONSlice[Education]{}
	}
	if p.Certifications == nil {
		p.Certifications = datatypes.JSONSlice[string]{}
	}
	if p.Projects == nil {
		p.Projects = datatypes.JSONSlice[Project]{}
	}
	for i := range p.Projects {
		if p.Projects[i].Technologies == nil {
			p.Projects[i].Technologies = StringList{}
		}
	}
	if p.Achievements == nil {
		p.Achievements = datatypes.JSONSlice[string]{}
	}
	if p.Languages == nil {
		p.Languages = datatypes.JSONSlice[string]{}
	}
	if p.Publications == nil {
		p.Publications = datatypes.JSONSlice[Publication]{}
	}
	if p.Volunteer == nil {
		p.Volunteer = datatypes.JSONSlice[Volunteer]{}
	}
	if p.AdditionalSections == nil {
		p.AdditionalSections = datatypes.JSONMap{}
	}
}
