package models

import (
	"fmt"

	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/cvparser"
)

// ApplyProfile copies an extracted candidate profile onto the student
// record. Empty extracted contact fields do not overwrite values the
// student entered themselves.
func (s *Student) ApplyProfile(profile *cvparser.CandidateProfile) error {
	if profile == nil {
		return fmt.Errorf("profile cannot be nil")
	}

	setIfPresent(&s.FirstName, profile.PersonalInfo.FirstName)
	setIfPresent(&s.LastName, profile.PersonalInfo.LastName)
	setIfPresent(&s.Email, profile.PersonalInfo.Email)
	setIfPresent(&s.Phone, profile.PersonalInfo.Phone)
	setIfPresent(&s.Address, profile.PersonalInfo.Address)
	setIfPresent(&s.City, profile.PersonalInfo.City)
	setIfPresent(&s.Country, profile.PersonalInfo.Country)

	s.EducationLevel = string(profile.EducationLevel)
	s.GitHubURL = profile.Links.GitHubURL
	s.LinkedInURL = profile.Links.LinkedInURL
	s.PortfolioURL = profile.Links.PortfolioURL

	var err error
	if s.Education, err = ToJSON(profile.Education); err != nil {
		return fmt.Errorf("encoding education: %w", err)
	}
	if s.Qualifications, err = ToJSON(profile.Qualifications); err != nil {
		return fmt.Errorf("encoding qualifications: %w", err)
	}
	if s.WorkExperience, err = ToJSON(profile.WorkExperience); err != nil {
		return fmt.Errorf("encoding work experience: %w", err)
	}
	if s.Skills, err = ToJSON(profile.Skills); err != nil {
		return fmt.Errorf("encoding skills: %w", err)
	}
	return nil
}

func setIfPresent(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
