package forms

import (
	"slices"
	"strings"

	"github.com/jakechorley/connect-care/pkg/core/model"
)

// Form is raw user input for one record kind.
// Draft validates the input and converts it to a record without id or timestamps.
type Form[T any] interface {
	Kind() model.Kind
	Draft() (T, error)
}

// EmergencyForm is the "report emergency" form as typed by the user
type EmergencyForm struct {
	Title          string `form:"title" validate:"required"`
	Description    string `form:"description"`
	Category       string `form:"category" validate:"required,emergency_category"`
	Severity       string `form:"severity" validate:"required,severity"`
	Status         string `form:"status" validate:"omitempty,emergency_status"`
	Location       string `form:"location" validate:"required"`
	Coordinates    string `form:"coordinates" validate:"omitempty,coordinates"`
	AffectedPeople string `form:"affected_people" validate:"omitempty,nonnegative"`
	PriorityNeeds  string `form:"priority_needs"`
	ContactPerson  string `form:"contact_person"`
	ContactPhone   string `form:"contact_phone"`
}

func (f EmergencyForm) Kind() model.Kind { return model.KindEmergency }

// Draft converts the form to an Emergency. New reports default to active.
func (f EmergencyForm) Draft() (model.Emergency, error) {
	trimFields(&f)
	if err := validateForm(f.Kind(), f); err != nil {
		return model.Emergency{}, err
	}

	coords, _ := ParseCoordinates(f.Coordinates)
	status := model.StatusActive
	if strings.TrimSpace(f.Status) != "" {
		status = model.EmergencyStatus(normalizeEnum(f.Status))
	}

	return model.Emergency{
		Title:          strings.TrimSpace(f.Title),
		Description:    strings.TrimSpace(f.Description),
		Category:       model.ParseEmergencyCategory(f.Category),
		Severity:       model.Severity(normalizeEnum(f.Severity)),
		Status:         status,
		Location:       strings.TrimSpace(f.Location),
		Coordinates:    coords,
		AffectedPeople: ParseOptionalInt(f.AffectedPeople),
		PriorityNeeds:  SplitList(f.PriorityNeeds),
		ContactPerson:  strings.TrimSpace(f.ContactPerson),
		ContactPhone:   strings.TrimSpace(f.ContactPhone),
	}, nil
}

// NGOForm is the NGO registration form
type NGOForm struct {
	Name            string    `form:"name" validate:"required"`
	Description     string    `form:"description" validate:"required"`
	Specializations Selection `form:"specializations" validate:"min=1,dive,specialization"`
	Location        string    `form:"location" validate:"required"`
	Coordinates     string    `form:"coordinates" validate:"omitempty,coordinates"`
	ContactEmail    string    `form:"contact_email" validate:"required,email"`
	ContactPhone    string    `form:"contact_phone"`
	Website         string    `form:"website" validate:"omitempty,url"`
	VolunteerCount  string    `form:"volunteer_count" validate:"omitempty,nonnegative"`
	ServiceAreas    string    `form:"service_areas"`
	Resources       string    `form:"resources"`
}

func (f NGOForm) Kind() model.Kind { return model.KindNGO }

// Draft converts the form to an NGO. Registrations start unverified.
func (f NGOForm) Draft() (model.NGO, error) {
	trimFields(&f)
	if err := validateForm(f.Kind(), f); err != nil {
		return model.NGO{}, err
	}

	coords, _ := ParseCoordinates(f.Coordinates)
	specs := make([]model.Specialization, 0, len(f.Specializations))
	for _, s := range f.Specializations {
		if v := model.Specialization(normalizeEnum(s)); !slices.Contains(specs, v) {
			specs = append(specs, v)
		}
	}

	return model.NGO{
		Name:            strings.TrimSpace(f.Name),
		Description:     strings.TrimSpace(f.Description),
		Specializations: specs,
		Location:        strings.TrimSpace(f.Location),
		Coordinates:     coords,
		ContactEmail:    strings.TrimSpace(f.ContactEmail),
		ContactPhone:    strings.TrimSpace(f.ContactPhone),
		Website:         strings.TrimSpace(f.Website),
		VolunteerCount:  ParseCount(f.VolunteerCount),
		ServiceAreas:    SplitList(f.ServiceAreas),
		Resources:       SplitList(f.Resources),
	}, nil
}

// VolunteerForm is the volunteer sign-up form
type VolunteerForm struct {
	FullName        string    `form:"full_name" validate:"required"`
	Email           string    `form:"email" validate:"required,email"`
	Phone           string    `form:"phone" validate:"required"`
	Location        string    `form:"location" validate:"required"`
	Coordinates     string    `form:"coordinates" validate:"omitempty,coordinates"`
	Skills          Selection `form:"skills" validate:"min=1,dive,skill"`
	ExperienceLevel string    `form:"experience_level" validate:"required,experience_level"`
	Availability    string    `form:"availability" validate:"omitempty,availability"`
	Languages       string    `form:"languages"`
	Transportation  string    `form:"transportation"`
}

func (f VolunteerForm) Kind() model.Kind { return model.KindVolunteer }

// Draft converts the form to a Volunteer. Sign-ups default to available and unverified.
func (f VolunteerForm) Draft() (model.Volunteer, error) {
	trimFields(&f)
	if err := validateForm(f.Kind(), f); err != nil {
		return model.Volunteer{}, err
	}

	coords, _ := ParseCoordinates(f.Coordinates)
	availability := model.AvailabilityAvailable
	if strings.TrimSpace(f.Availability) != "" {
		availability = model.ParseAvailability(f.Availability)
	}
	skills := make([]model.Skill, 0, len(f.Skills))
	for _, s := range f.Skills {
		if v := model.Skill(normalizeEnum(s)); !slices.Contains(skills, v) {
			skills = append(skills, v)
		}
	}

	return model.Volunteer{
		FullName:        strings.TrimSpace(f.FullName),
		Email:           strings.TrimSpace(f.Email),
		Phone:           strings.TrimSpace(f.Phone),
		Location:        strings.TrimSpace(f.Location),
		Coordinates:     coords,
		Skills:          skills,
		ExperienceLevel: model.ParseExperienceLevel(f.ExperienceLevel),
		Availability:    availability,
		Languages:       SplitList(f.Languages),
		Transportation:  parseBool(f.Transportation),
	}, nil
}

// ResourceForm is the "add resource" form
type ResourceForm struct {
	Name         string `form:"name" validate:"required"`
	Description  string `form:"description"`
	Category     string `form:"category" validate:"required,resource_category"`
	Quantity     string `form:"quantity" validate:"required,nonnegative"`
	Unit         string `form:"unit" validate:"required"`
	Location     string `form:"location" validate:"required"`
	Coordinates  string `form:"coordinates" validate:"omitempty,coordinates"`
	ProviderNGO  string `form:"provider_ngo" validate:"required"`
	Availability string `form:"availability" validate:"omitempty,stock_availability"`
	EmergencyIDs string `form:"emergency_ids"`
}

func (f ResourceForm) Kind() model.Kind { return model.KindResource }

// Draft converts the form to a Resource. New stock defaults to available.
func (f ResourceForm) Draft() (model.Resource, error) {
	trimFields(&f)
	if err := validateForm(f.Kind(), f); err != nil {
		return model.Resource{}, err
	}

	coords, _ := ParseCoordinates(f.Coordinates)
	availability := model.StockAvailable
	if strings.TrimSpace(f.Availability) != "" {
		availability = model.ResourceAvailability(normalizeEnum(f.Availability))
	}

	return model.Resource{
		Name:         strings.TrimSpace(f.Name),
		Description:  strings.TrimSpace(f.Description),
		Category:     model.ResourceCategory(normalizeEnum(f.Category)),
		Quantity:     ParseCount(f.Quantity),
		Unit:         strings.TrimSpace(f.Unit),
		Location:     strings.TrimSpace(f.Location),
		Coordinates:  coords,
		ProviderNGO:  strings.TrimSpace(f.ProviderNGO),
		Availability: availability,
		EmergencyIDs: SplitList(f.EmergencyIDs),
	}, nil
}
