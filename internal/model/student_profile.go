package model

import "strings"

var (
	Cities = []string{"Riyadh", "Jeddah", "Dammam", "Al-Ahsa", "Hail", "Madinah"}
	Majors = []string{"CS", "IT", "BUS", "LS"}

	majorNames = map[string]string{
		"CS":  "Computer Science",
		"IT":  "Information Technology",
		"BUS": "Business",
		"LS":  "Language Studies",
	}
)

// swagger:model StudentProfile
type StudentProfile struct {
	BaseModel
	UserID       uint   `gorm:"uniqueIndex;not null" json:"userId"`
	FirstName    string `gorm:"size:60;not null" json:"firstName"`
	SecondName   string `gorm:"size:60;not null" json:"secondName"`
	ThirdName    string `gorm:"size:60;not null" json:"thirdName"`
	UniversityID string `gorm:"size:30;uniqueIndex;not null" json:"universityId"`
	City         string `gorm:"size:50;not null" json:"city"`
	Major        string `gorm:"size:50;not null" json:"major"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}

func (p *StudentProfile) FullName() string {
	return strings.Join(strings.Fields(strings.Join([]string{p.FirstName, p.SecondName, p.ThirdName}, " ")), " ")
}

// MajorName returns the display label for the stored major code.
func (p *StudentProfile) MajorName() string {
	if name, ok := majorNames[p.Major]; ok {
		return name
	}
	return p.Major
}
