package core

import "strings"

// HumanName is a simplified FHIR HumanName.
type HumanName struct {
	Use    string   `json:"use"`
	Family string   `json:"family"`
	Given  []string `json:"given"`
}

// Identifier is a simplified FHIR Identifier (e.g. system "nik").
type Identifier struct {
	System string `json:"system"`
	Value  string `json:"value"`
}

// Patient is an illustrative, FHIR-shaped directory entry. It is not a conformant resource.
type Patient struct {
	ID           string       `json:"id"`
	ResourceType string       `json:"resourceType"`
	Name         []HumanName  `json:"name"`
	Gender       string       `json:"gender"`
	BirthDate    string       `json:"birthDate"`
	Identifier   []Identifier `json:"identifier"`
}

func (p Patient) primaryName() HumanName {
	if len(p.Name) == 0 {
		return HumanName{}
	}
	return p.Name[0]
}

// FamilyName returns the family name of the first listed name.
func (p Patient) FamilyName() string {
	return p.primaryName().Family
}

// GivenNames returns the given names of the first listed name joined by spaces.
func (p Patient) GivenNames() string {
	return strings.Join(p.primaryName().Given, " ")
}

// DirectoryName renders "Family, Given" for list views.
func (p Patient) DirectoryName() string {
	return p.FamilyName() + ", " + p.GivenNames()
}

// DisplayName renders "Given Family" for headers.
func (p Patient) DisplayName() string {
	return strings.TrimSpace(p.GivenNames() + " " + p.FamilyName())
}

// ResourcePath renders the FHIR-style resource label shown in the patient header.
func (p Patient) ResourcePath() string {
	return "Patient/FHIR-R4/" + p.ID
}

// Matches reports whether query is a case-insensitive substring of the family
// name or the joined given names. An empty query matches everyone.
func (p Patient) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.FamilyName()), q) ||
		strings.Contains(strings.ToLower(p.GivenNames()), q)
}
