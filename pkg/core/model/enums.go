package model

import "slices"

// Unknown is the bucket reported for enum values outside their declared set.
const Unknown = "unknown"

// Enum is implemented by every enumerated field type
type Enum interface {
	String() string
	IsValid() bool
}

// EmergencyCategory classifies an emergency
type EmergencyCategory string

const (
	CategoryNaturalDisaster  EmergencyCategory = "natural_disaster"
	CategoryMedicalEmergency EmergencyCategory = "medical_emergency"
	CategoryFire             EmergencyCategory = "fire"
	CategoryAccident         EmergencyCategory = "accident"
	CategoryViolence         EmergencyCategory = "violence"
	CategoryInfrastructure   EmergencyCategory = "infrastructure"
	CategoryOther            EmergencyCategory = "other"
)

var emergencyCategories = []EmergencyCategory{
	CategoryNaturalDisaster,
	CategoryMedicalEmergency,
	CategoryFire,
	CategoryAccident,
	CategoryViolence,
	CategoryInfrastructure,
	CategoryOther,
}

func AllEmergencyCategories() []EmergencyCategory { return slices.Clone(emergencyCategories) }

func (c EmergencyCategory) IsValid() bool  { return slices.Contains(emergencyCategories, c) }
func (c EmergencyCategory) String() string { return string(c) }

// Severity is the assessed severity of an emergency
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

func AllSeverities() []Severity { return slices.Clone(severities) }

func (s Severity) IsValid() bool  { return slices.Contains(severities, s) }
func (s Severity) String() string { return string(s) }

// EmergencyStatus tracks where an emergency is in its response lifecycle
type EmergencyStatus string

const (
	StatusActive     EmergencyStatus = "active"
	StatusResponding EmergencyStatus = "responding"
	StatusResolved   EmergencyStatus = "resolved"
	StatusMonitoring EmergencyStatus = "monitoring"
)

var emergencyStatuses = []EmergencyStatus{StatusActive, StatusResponding, StatusResolved, StatusMonitoring}

func AllEmergencyStatuses() []EmergencyStatus { return slices.Clone(emergencyStatuses) }

func (s EmergencyStatus) IsValid() bool  { return slices.Contains(emergencyStatuses, s) }
func (s EmergencyStatus) String() string { return string(s) }

// Specialization is an area an NGO works in
type Specialization string

const (
	SpecializationDisasterRelief  Specialization = "disaster_relief"
	SpecializationMedicalAid      Specialization = "medical_aid"
	SpecializationFoodSecurity    Specialization = "food_security"
	SpecializationShelter         Specialization = "shelter"
	SpecializationSearchRescue    Specialization = "search_rescue"
	SpecializationLogistics       Specialization = "logistics"
	SpecializationMentalHealth    Specialization = "mental_health"
	SpecializationEducation       Specialization = "education"
	SpecializationChildProtection Specialization = "child_protection"
	SpecializationElderCare       Specialization = "elder_care"
	SpecializationInfrastructure  Specialization = "infrastructure"
)

var specializations = []Specialization{
	SpecializationDisasterRelief,
	SpecializationMedicalAid,
	SpecializationFoodSecurity,
	SpecializationShelter,
	SpecializationSearchRescue,
	SpecializationLogistics,
	SpecializationMentalHealth,
	SpecializationEducation,
	SpecializationChildProtection,
	SpecializationElderCare,
	SpecializationInfrastructure,
}

func AllSpecializations() []Specialization { return slices.Clone(specializations) }

func (s Specialization) IsValid() bool  { return slices.Contains(specializations, s) }
func (s Specialization) String() string { return string(s) }

// Skill is something a volunteer can offer
type Skill string

const (
	SkillMedical       Skill = "medical"
	SkillFirstAid      Skill = "first_aid"
	SkillSearchRescue  Skill = "search_rescue"
	SkillLogistics     Skill = "logistics"
	SkillCommunication Skill = "communication"
	SkillCounseling    Skill = "counseling"
	SkillConstruction  Skill = "construction"
	SkillCooking       Skill = "cooking"
	SkillChildcare     Skill = "childcare"
	SkillTranslation   Skill = "translation"
	SkillDriving       Skill = "driving"
	SkillTechSupport   Skill = "tech_support"
)

var skills = []Skill{
	SkillMedical,
	SkillFirstAid,
	SkillSearchRescue,
	SkillLogistics,
	SkillCommunication,
	SkillCounseling,
	SkillConstruction,
	SkillCooking,
	SkillChildcare,
	SkillTranslation,
	SkillDriving,
	SkillTechSupport,
}

func AllSkills() []Skill { return slices.Clone(skills) }

func (s Skill) IsValid() bool  { return slices.Contains(skills, s) }
func (s Skill) String() string { return string(s) }

// ExperienceLevel grades a volunteer's field experience
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
	ExperienceExpert       ExperienceLevel = "expert"
)

var experienceLevels = []ExperienceLevel{ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced, ExperienceExpert}

func AllExperienceLevels() []ExperienceLevel { return slices.Clone(experienceLevels) }

func (l ExperienceLevel) IsValid() bool  { return slices.Contains(experienceLevels, l) }
func (l ExperienceLevel) String() string { return string(l) }

// Availability is a volunteer's current availability
type Availability string

const (
	AvailabilityAvailable    Availability = "available"
	AvailabilityOnAssignment Availability = "on_assignment"
	AvailabilityUnavailable  Availability = "unavailable"
)

var availabilities = []Availability{AvailabilityAvailable, AvailabilityOnAssignment, AvailabilityUnavailable}

func AllAvailabilities() []Availability { return slices.Clone(availabilities) }

func (a Availability) IsValid() bool  { return slices.Contains(availabilities, a) }
func (a Availability) String() string { return string(a) }

// ResourceCategory classifies a resource
type ResourceCategory string

const (
	ResourceMedicalSupplies  ResourceCategory = "medical_supplies"
	ResourceFoodWater        ResourceCategory = "food_water"
	ResourceShelterMaterials ResourceCategory = "shelter_materials"
	ResourceTransportation   ResourceCategory = "transportation"
	ResourceCommunication    ResourceCategory = "communication"
	ResourceEquipment        ResourceCategory = "equipment"
	ResourceVolunteers       ResourceCategory = "volunteers"
	ResourceFunding          ResourceCategory = "funding"
)

var resourceCategories = []ResourceCategory{
	ResourceMedicalSupplies,
	ResourceFoodWater,
	ResourceShelterMaterials,
	ResourceTransportation,
	ResourceCommunication,
	ResourceEquipment,
	ResourceVolunteers,
	ResourceFunding,
}

func AllResourceCategories() []ResourceCategory { return slices.Clone(resourceCategories) }

func (c ResourceCategory) IsValid() bool  { return slices.Contains(resourceCategories, c) }
func (c ResourceCategory) String() string { return string(c) }

// ResourceAvailability tracks whether stock can still be allocated
type ResourceAvailability string

const (
	StockAvailable ResourceAvailability = "available"
	StockReserved  ResourceAvailability = "reserved"
	StockDeployed  ResourceAvailability = "deployed"
)

var resourceAvailabilities = []ResourceAvailability{StockAvailable, StockReserved, StockDeployed}

func AllResourceAvailabilities() []ResourceAvailability { return slices.Clone(resourceAvailabilities) }

func (a ResourceAvailability) IsValid() bool  { return slices.Contains(resourceAvailabilities, a) }
func (a ResourceAvailability) String() string { return string(a) }

// EnumLabel returns the enum value, or Unknown if it is outside its declared set
func EnumLabel(e Enum) string {
	if !e.IsValid() {
		return Unknown
	}
	return e.String()
}

// Values converts a list of enum values to plain strings
func Values[E ~string](values []E) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
