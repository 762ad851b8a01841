package addresskit

import "strings"

// Province represents a province or centrally-run city in Vietnam.
type Province struct {
	Code                   string `json:"code"`
	Name                   string `json:"name"`
	NameEn                 string `json:"nameEn,omitempty"`
	FullName               string `json:"fullName,omitempty"`
	FullNameEn             string `json:"fullNameEn,omitempty"`
	CodeName               string `json:"codeName,omitempty"`
	AdministrativeUnitID   *int   `json:"administrativeUnitId,omitempty"`
	AdministrativeRegionID *int   `json:"administrativeRegionId,omitempty"`
}

// District represents a district (quận/huyện) within a province.
type District struct {
	Code                 string `json:"code"`
	Name                 string `json:"name"`
	NameEn               string `json:"nameEn,omitempty"`
	FullName             string `json:"fullName,omitempty"`
	FullNameEn           string `json:"fullNameEn,omitempty"`
	CodeName             string `json:"codeName,omitempty"`
	ProvinceCode         string `json:"provinceCode"`
	AdministrativeUnitID *int   `json:"administrativeUnitId,omitempty"`
}

// Ward represents a ward or commune (phường/xã) within a district.
type Ward struct {
	Code                 string `json:"code"`
	Name                 string `json:"name"`
	NameEn               string `json:"nameEn,omitempty"`
	FullName             string `json:"fullName,omitempty"`
	FullNameEn           string `json:"fullNameEn,omitempty"`
	CodeName             string `json:"codeName,omitempty"`
	DistrictCode         string `json:"districtCode"`
	AdministrativeUnitID *int   `json:"administrativeUnitId,omitempty"`
}

// Envelope is the optional wrapper the API may put around any payload.
type Envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
	Success *bool  `json:"success,omitempty"`
}

// Matches reports whether query is a case-insensitive substring of the
// province name, English name or code-name.
func (p Province) Matches(query string) bool {
	return matchNames(strings.ToLower(query), p.Name, p.NameEn, p.CodeName)
}

// Matches reports whether query is a case-insensitive substring of the
// district name, English name or code-name.
func (d District) Matches(query string) bool {
	return matchNames(strings.ToLower(query), d.Name, d.NameEn, d.CodeName)
}

// Matches reports whether query is a case-insensitive substring of the
// ward name, English name or code-name.
func (w Ward) Matches(query string) bool {
	return matchNames(strings.ToLower(query), w.Name, w.NameEn, w.CodeName)
}
