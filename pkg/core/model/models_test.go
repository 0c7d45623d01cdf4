package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"emergency", KindEmergency, false},
		{"Emergencies", KindEmergency, false},
		{"ngos", KindNGO, false},
		{" NGO ", KindNGO, false},
		{"volunteers", KindVolunteer, false},
		{"resource", KindResource, false},
		{"donor", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLegacyVocabulary(t *testing.T) {
	assert.Equal(t, AvailabilityOnAssignment, ParseAvailability("busy"))
	assert.Equal(t, AvailabilityAvailable, ParseAvailability(" Available "))
	assert.Equal(t, ExperienceAdvanced, ParseExperienceLevel("experienced"))
	assert.Equal(t, ExperienceExpert, ParseExperienceLevel("expert"))
	assert.Equal(t, CategoryMedicalEmergency, ParseEmergencyCategory("medical"))
	assert.Equal(t, CategoryMedicalEmergency, ParseEmergencyCategory("mental_health"))
	assert.Equal(t, CategoryViolence, ParseEmergencyCategory("security"))
	assert.Equal(t, CategoryFire, ParseEmergencyCategory("fire"))

	spec, ok := LegacyNGOCategory("healthcare")
	assert.True(t, ok)
	assert.Equal(t, SpecializationMedicalAid, spec)

	_, ok = LegacyNGOCategory("social_welfare")
	assert.False(t, ok)
}

func TestValidate_ReportsMalformedEnums(t *testing.T) {
	v := Volunteer{
		Skills:          []Skill{SkillMedical, "juggling"},
		ExperienceLevel: ExperienceBeginner,
		Availability:    "busy",
	}

	err := v.Validate()
	require.Error(t, err)

	var malformed *MalformedEnumError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, err.Error(), `malformed skills: "juggling"`)
	assert.Contains(t, err.Error(), `malformed availability: "busy"`)

	e := Emergency{Category: CategoryFire, Severity: SeverityLow, Status: StatusActive}
	assert.NoError(t, e.Validate())
}

func TestFacet_UnknownBucket(t *testing.T) {
	e := Emergency{Category: "tsunami", Severity: SeverityHigh, Status: StatusActive}

	values, ok := e.Facet(FacetCategory)
	require.True(t, ok)
	assert.Equal(t, []string{Unknown}, values)

	values, ok = e.Facet(FacetSeverity)
	require.True(t, ok)
	assert.Equal(t, []string{"high"}, values)
}

func TestFacet_PerKind(t *testing.T) {
	ngo := NGO{Specializations: []Specialization{SpecializationShelter, SpecializationLogistics}, Verified: true}
	values, ok := ngo.Facet(FacetCategory)
	require.True(t, ok)
	assert.Equal(t, []string{"shelter", "logistics"}, values)
	values, _ = ngo.Facet(FacetStatus)
	assert.Equal(t, []string{NGOVerified}, values)
	_, ok = ngo.Facet(FacetSeverity)
	assert.False(t, ok)

	vol := Volunteer{Skills: []Skill{SkillDriving}, Availability: AvailabilityUnavailable}
	values, _ = vol.Facet(FacetStatus)
	assert.Equal(t, []string{"unavailable"}, values)
	_, ok = vol.Facet(FacetSeverity)
	assert.False(t, ok)

	res := Resource{Category: ResourceEquipment, Availability: StockDeployed}
	values, _ = res.Facet(FacetCategory)
	assert.Equal(t, []string{"equipment"}, values)
	values, _ = res.Facet(FacetStatus)
	assert.Equal(t, []string{"deployed"}, values)
}

func TestClone_IsDeep(t *testing.T) {
	people := 10
	orig := Emergency{
		Coordinates:    &Coordinates{Lat: 1, Lng: 2},
		AffectedPeople: &people,
		PriorityNeeds:  []string{"water"},
	}

	cp := orig.Clone()
	cp.Coordinates.Lat = 9
	*cp.AffectedPeople = 99
	cp.PriorityNeeds[0] = "boats"

	assert.Equal(t, 1.0, orig.Coordinates.Lat)
	assert.Equal(t, 10, *orig.AffectedPeople)
	assert.Equal(t, []string{"water"}, orig.PriorityNeeds)
}

func TestNormalize_ListsNeverNil(t *testing.T) {
	n := NGO{}
	n.Normalize()
	assert.NotNil(t, n.Specializations)
	assert.NotNil(t, n.ServiceAreas)
	assert.NotNil(t, n.Resources)

	v := Volunteer{}
	v.Normalize()
	assert.NotNil(t, v.Skills)
	assert.NotNil(t, v.Languages)
}

func TestField_ByJSONName(t *testing.T) {
	v := Volunteer{Meta: Meta{ID: "v1"}, FullName: "Asha", Skills: []Skill{SkillCooking, "juggling"}, Transportation: true}

	got, ok := v.Field("full_name")
	require.True(t, ok)
	assert.Equal(t, "Asha", got)

	got, ok = v.Field("skills")
	require.True(t, ok)
	assert.Equal(t, []string{"cooking", Unknown}, got)

	got, ok = v.Field("id")
	require.True(t, ok)
	assert.Equal(t, "v1", got)

	_, ok = v.Field("age")
	assert.False(t, ok)
}

func TestSearchText_Volunteer(t *testing.T) {
	v := Volunteer{FullName: "Asha", Location: "Pune", Skills: []Skill{SkillCooking}}
	assert.Equal(t, []string{"Asha", "Pune", "cooking"}, v.SearchText())
}
