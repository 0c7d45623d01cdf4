package model

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// Meta holds the identity and timestamps every record carries
type Meta struct {
	ID          string    `json:"id" yaml:"id"`
	CreatedDate time.Time `json:"created_date" yaml:"created_date"`
	UpdatedDate time.Time `json:"updated_date" yaml:"updated_date"`
}

// Metadata gives stores access to the embedded identity fields
func (m *Meta) Metadata() *Meta { return m }

// Coordinates is a WGS84 position in decimal degrees
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Facet names the filterable dimensions shared by all list pages
type Facet int

const (
	FacetCategory Facet = iota
	FacetSeverity
	FacetStatus
)

func (f Facet) String() string {
	switch f {
	case FacetCategory:
		return "category"
	case FacetSeverity:
		return "severity"
	case FacetStatus:
		return "status"
	default:
		return fmt.Sprintf("facet(%d)", int(f))
	}
}

// NGO status facet values
const (
	NGOVerified   = "verified"
	NGOUnverified = "unverified"
)

// MalformedEnumError reports an enum field holding a value outside its declared set
type MalformedEnumError struct {
	Field string
	Value string
}

func (e *MalformedEnumError) Error() string {
	return fmt.Sprintf("malformed %s: %q", e.Field, e.Value)
}

func checkEnum(field string, e Enum) error {
	if e.IsValid() {
		return nil
	}
	return &MalformedEnumError{Field: field, Value: e.String()}
}

func checkEnums[E Enum](field string, values []E) error {
	var errs []error
	for _, v := range values {
		errs = append(errs, checkEnum(field, v))
	}
	return errors.Join(errs...)
}

func enumFacet(e Enum) []string { return []string{EnumLabel(e)} }

func enumList[E Enum](values []E) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = EnumLabel(v)
	}
	return out
}

func cloneCoordinates(c *Coordinates) *Coordinates {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func cloneInt(i *int) *int {
	if i == nil {
		return nil
	}
	cp := *i
	return &cp
}

func nonNil[E any](s []E) []E {
	if s == nil {
		return []E{}
	}
	return s
}

func clonedList[E any](s []E) []E {
	return nonNil(slices.Clone(s))
}

func metaField(m Meta, name string) (any, bool) {
	switch name {
	case "id":
		return m.ID, true
	case "created_date":
		return m.CreatedDate, true
	case "updated_date":
		return m.UpdatedDate, true
	}
	return nil, false
}

// Emergency is a reported incident needing a response
type Emergency struct {
	Meta           `yaml:",inline"`
	Title          string            `json:"title" yaml:"title"`
	Description    string            `json:"description" yaml:"description"`
	Category       EmergencyCategory `json:"category" yaml:"category"`
	Severity       Severity          `json:"severity" yaml:"severity"`
	Status         EmergencyStatus   `json:"status" yaml:"status"`
	Location       string            `json:"location" yaml:"location"`
	Coordinates    *Coordinates      `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
	AffectedPeople *int              `json:"affected_people,omitempty" yaml:"affected_people,omitempty"`
	PriorityNeeds  []string          `json:"priority_needs" yaml:"priority_needs"`
	ContactPerson  string            `json:"contact_person,omitempty" yaml:"contact_person,omitempty"`
	ContactPhone   string            `json:"contact_phone,omitempty" yaml:"contact_phone,omitempty"`
}

func (e Emergency) Clone() Emergency {
	e.Coordinates = cloneCoordinates(e.Coordinates)
	e.AffectedPeople = cloneInt(e.AffectedPeople)
	e.PriorityNeeds = clonedList(e.PriorityNeeds)
	return e
}

func (e *Emergency) Normalize() {
	e.PriorityNeeds = nonNil(e.PriorityNeeds)
}

// Validate reports every enum field holding an undeclared value
func (e Emergency) Validate() error {
	return errors.Join(
		checkEnum("category", e.Category),
		checkEnum("severity", e.Severity),
		checkEnum("status", e.Status),
	)
}

func (e Emergency) Field(name string) (any, bool) {
	switch name {
	case "title":
		return e.Title, true
	case "description":
		return e.Description, true
	case "category":
		return e.Category, true
	case "severity":
		return e.Severity, true
	case "status":
		return e.Status, true
	case "location":
		return e.Location, true
	case "affected_people":
		return e.AffectedPeople, true
	case "priority_needs":
		return e.PriorityNeeds, true
	case "contact_person":
		return e.ContactPerson, true
	case "contact_phone":
		return e.ContactPhone, true
	}
	return metaField(e.Meta, name)
}

func (e Emergency) SearchText() []string {
	return []string{e.Title, e.Description, e.Location}
}

func (e Emergency) Facet(f Facet) ([]string, bool) {
	switch f {
	case FacetCategory:
		return enumFacet(e.Category), true
	case FacetSeverity:
		return enumFacet(e.Severity), true
	case FacetStatus:
		return enumFacet(e.Status), true
	}
	return nil, false
}

// NGO is a response organization
type NGO struct {
	Meta            `yaml:",inline"`
	Name            string           `json:"name" yaml:"name"`
	Description     string           `json:"description" yaml:"description"`
	Specializations []Specialization `json:"specializations" yaml:"specializations"`
	Location        string           `json:"location" yaml:"location"`
	Coordinates     *Coordinates     `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
	ContactEmail    string           `json:"contact_email" yaml:"contact_email"`
	ContactPhone    string           `json:"contact_phone,omitempty" yaml:"contact_phone,omitempty"`
	Website         string           `json:"website,omitempty" yaml:"website,omitempty"`
	Verified        bool             `json:"verified" yaml:"verified"`
	VolunteerCount  int              `json:"volunteer_count" yaml:"volunteer_count"`
	ServiceAreas    []string         `json:"service_areas" yaml:"service_areas"`
	Resources       []string         `json:"resources" yaml:"resources"`
}

func (n NGO) Clone() NGO {
	n.Specializations = clonedList(n.Specializations)
	n.Coordinates = cloneCoordinates(n.Coordinates)
	n.ServiceAreas = clonedList(n.ServiceAreas)
	n.Resources = clonedList(n.Resources)
	return n
}

func (n *NGO) Normalize() {
	n.Specializations = nonNil(n.Specializations)
	n.ServiceAreas = nonNil(n.ServiceAreas)
	n.Resources = nonNil(n.Resources)
}

func (n NGO) Validate() error {
	return checkEnums("specializations", n.Specializations)
}

func (n NGO) Field(name string) (any, bool) {
	switch name {
	case "name":
		return n.Name, true
	case "description":
		return n.Description, true
	case "specializations":
		return enumList(n.Specializations), true
	case "location":
		return n.Location, true
	case "contact_email":
		return n.ContactEmail, true
	case "contact_phone":
		return n.ContactPhone, true
	case "website":
		return n.Website, true
	case "verified":
		return n.Verified, true
	case "volunteer_count":
		return n.VolunteerCount, true
	case "service_areas":
		return n.ServiceAreas, true
	case "resources":
		return n.Resources, true
	}
	return metaField(n.Meta, name)
}

func (n NGO) SearchText() []string {
	return []string{n.Name, n.Description, n.Location}
}

func (n NGO) Facet(f Facet) ([]string, bool) {
	switch f {
	case FacetCategory:
		return enumList(n.Specializations), true
	case FacetStatus:
		if n.Verified {
			return []string{NGOVerified}, true
		}
		return []string{NGOUnverified}, true
	}
	return nil, false
}

// Volunteer is a person registered to help
type Volunteer struct {
	Meta            `yaml:",inline"`
	FullName        string          `json:"full_name" yaml:"full_name"`
	Email           string          `json:"email" yaml:"email"`
	Phone           string          `json:"phone" yaml:"phone"`
	Location        string          `json:"location" yaml:"location"`
	Coordinates     *Coordinates    `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
	Skills          []Skill         `json:"skills" yaml:"skills"`
	ExperienceLevel ExperienceLevel `json:"experience_level" yaml:"experience_level"`
	Availability    Availability    `json:"availability" yaml:"availability"`
	Languages       []string        `json:"languages" yaml:"languages"`
	Transportation  bool            `json:"transportation" yaml:"transportation"`
	Verified        bool            `json:"verified" yaml:"verified"`
}

func (v Volunteer) Clone() Volunteer {
	v.Coordinates = cloneCoordinates(v.Coordinates)
	v.Skills = clonedList(v.Skills)
	v.Languages = clonedList(v.Languages)
	return v
}

func (v *Volunteer) Normalize() {
	v.Skills = nonNil(v.Skills)
	v.Languages = nonNil(v.Languages)
}

func (v Volunteer) Validate() error {
	return errors.Join(
		checkEnums("skills", v.Skills),
		checkEnum("experience_level", v.ExperienceLevel),
		checkEnum("availability", v.Availability),
	)
}

func (v Volunteer) Field(name string) (any, bool) {
	switch name {
	case "full_name":
		return v.FullName, true
	case "email":
		return v.Email, true
	case "phone":
		return v.Phone, true
	case "location":
		return v.Location, true
	case "skills":
		return enumList(v.Skills), true
	case "experience_level":
		return v.ExperienceLevel, true
	case "availability":
		return v.Availability, true
	case "languages":
		return v.Languages, true
	case "transportation":
		return v.Transportation, true
	case "verified":
		return v.Verified, true
	}
	return metaField(v.Meta, name)
}

// SearchText covers name, location and each skill, as the volunteer search box does
func (v Volunteer) SearchText() []string {
	return append([]string{v.FullName, v.Location}, Values(v.Skills)...)
}

func (v Volunteer) Facet(f Facet) ([]string, bool) {
	switch f {
	case FacetCategory:
		return enumList(v.Skills), true
	case FacetStatus:
		return enumFacet(v.Availability), true
	}
	return nil, false
}

// Resource is a stock of supplies or capacity offered by a provider
type Resource struct {
	Meta         `yaml:",inline"`
	Name         string               `json:"name" yaml:"name"`
	Description  string               `json:"description" yaml:"description"`
	Category     ResourceCategory     `json:"category" yaml:"category"`
	Quantity     int                  `json:"quantity" yaml:"quantity"`
	Unit         string               `json:"unit" yaml:"unit"`
	Location     string               `json:"location" yaml:"location"`
	Coordinates  *Coordinates         `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
	ProviderNGO  string               `json:"provider_ngo" yaml:"provider_ngo"`
	Availability ResourceAvailability `json:"availability" yaml:"availability"`
	EmergencyIDs []string             `json:"emergency_ids" yaml:"emergency_ids"`
}

func (r Resource) Clone() Resource {
	r.Coordinates = cloneCoordinates(r.Coordinates)
	r.EmergencyIDs = clonedList(r.EmergencyIDs)
	return r
}

func (r *Resource) Normalize() {
	r.EmergencyIDs = nonNil(r.EmergencyIDs)
}

func (r Resource) Validate() error {
	return errors.Join(
		checkEnum("category", r.Category),
		checkEnum("availability", r.Availability),
	)
}

func (r Resource) Field(name string) (any, bool) {
	switch name {
	case "name":
		return r.Name, true
	case "description":
		return r.Description, true
	case "category":
		return r.Category, true
	case "quantity":
		return r.Quantity, true
	case "unit":
		return r.Unit, true
	case "location":
		return r.Location, true
	case "provider_ngo":
		return r.ProviderNGO, true
	case "availability":
		return r.Availability, true
	case "emergency_ids":
		return r.EmergencyIDs, true
	}
	return metaField(r.Meta, name)
}

func (r Resource) SearchText() []string {
	return []string{r.Name, r.Description, r.ProviderNGO, r.Location}
}

func (r Resource) Facet(f Facet) ([]string, bool) {
	switch f {
	case FacetCategory:
		return enumFacet(r.Category), true
	case FacetStatus:
		return enumFacet(r.Availability), true
	}
	return nil, false
}
