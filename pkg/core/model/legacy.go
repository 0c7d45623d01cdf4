package model

import "strings"

// Older dashboard screens used a second vocabulary for some fields. These helpers map
// that vocabulary onto the canonical one so imported data and typed input agree.

// ParseAvailability maps a volunteer availability value, accepting the legacy "busy"
func ParseAvailability(s string) Availability {
	v := Availability(strings.ToLower(strings.TrimSpace(s)))
	if v == "busy" {
		return AvailabilityOnAssignment
	}
	return v
}

// ParseExperienceLevel maps an experience level, accepting the legacy "experienced"
func ParseExperienceLevel(s string) ExperienceLevel {
	v := ExperienceLevel(strings.ToLower(strings.TrimSpace(s)))
	if v == "experienced" {
		return ExperienceAdvanced
	}
	return v
}

var legacyEmergencyCategories = map[string]EmergencyCategory{
	"medical":       CategoryMedicalEmergency,
	"mental_health": CategoryMedicalEmergency,
	"security":      CategoryViolence,
}

// ParseEmergencyCategory maps an emergency category, accepting the legacy short names
func ParseEmergencyCategory(s string) EmergencyCategory {
	v := strings.ToLower(strings.TrimSpace(s))
	if c, ok := legacyEmergencyCategories[v]; ok {
		return c
	}
	return EmergencyCategory(v)
}

var legacyNGOCategories = map[string]Specialization{
	"disaster_relief": SpecializationDisasterRelief,
	"healthcare":      SpecializationMedicalAid,
	"education":       SpecializationEducation,
}

// LegacyNGOCategory maps the single "category" of the older NGO form to a specialization.
// Categories with no counterpart (social_welfare, human_rights, ...) report false.
func LegacyNGOCategory(s string) (Specialization, bool) {
	spec, ok := legacyNGOCategories[strings.ToLower(strings.TrimSpace(s))]
	return spec, ok
}
