package models

import "slices"

// Countries lists every nation that may be picked as tournament champion.
var Countries = []string{
	"Mexico", "United States", "Canada", "Costa Rica", "Panama", "Jamaica", "El Salvador", "Honduras", "Nicaragua", "Guatemala",
	"Argentina", "Brazil", "Uruguay", "Colombia", "Ecuador", "Chile", "Paraguay", "Peru", "Venezuela", "Bolivia",
	"France", "England", "Spain", "Germany", "Portugal", "Netherlands", "Italy", "Belgium", "Croatia", "Denmark",
	"Switzerland", "Serbia", "Poland", "Sweden", "Ukraine", "Scotland", "Wales",
	"Morocco", "Senegal", "Nigeria", "Egypt", "Algeria", "Cameroon", "Mali", "Ivory Coast", "Tunisia", "Ghana", "South Africa",
	"Japan", "Iran", "South Korea", "Australia", "Saudi Arabia", "Qatar", "Iraq", "Uzbekistan",
	"New Zealand",
	"Dominican Republic",
}

// RegistrationCountries are the home countries accepted at sign-up.
var RegistrationCountries = []string{
	"El Salvador",
	"Honduras",
	"Guatemala",
	"Mexico",
	"Nicaragua",
	"Costa Rica",
	"Panama",
	"Colombia",
	"United States",
}

var Groups = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}

// ISO 3166-1 alpha-2 codes, with the UK home nations using flagcdn subdivisions.
var countryFlagCodes = map[string]string{
	"Mexico": "mx", "United States": "us", "Canada": "ca", "Costa Rica": "cr", "Panama": "pa", "Jamaica": "jm",
	"El Salvador": "sv", "Honduras": "hn", "Nicaragua": "ni", "Guatemala": "gt", "Dominican Republic": "do",
	"Argentina": "ar", "Brazil": "br", "Uruguay": "uy", "Colombia": "co", "Ecuador": "ec", "Chile": "cl",
	"Paraguay": "py", "Peru": "pe", "Venezuela": "ve", "Bolivia": "bo",
	"France": "fr", "England": "gb-eng", "Spain": "es", "Germany": "de", "Portugal": "pt", "Netherlands": "nl",
	"Italy": "it", "Belgium": "be", "Croatia": "hr", "Denmark": "dk", "Switzerland": "ch", "Serbia": "rs",
	"Poland": "pl", "Sweden": "se", "Ukraine": "ua", "Scotland": "gb-sct", "Wales": "gb-wls",
	"Morocco": "ma", "Senegal": "sn", "Nigeria": "ng", "Egypt": "eg", "Algeria": "dz", "Cameroon": "cm",
	"Mali": "ml", "Ivory Coast": "ci", "Tunisia": "tn", "Ghana": "gh", "South Africa": "za",
	"Japan": "jp", "Iran": "ir", "South Korea": "kr", "Australia": "au", "Saudi Arabia": "sa", "Qatar": "qa",
	"Iraq": "iq", "Uzbekistan": "uz",
	"New Zealand": "nz",
}

// FlagCode returns the flag code for a country, or "" for placeholders such
// as knockout slots that have not been decided yet.
func FlagCode(country string) string {
	return countryFlagCodes[country]
}

func IsKnownCountry(country string) bool {
	return slices.Contains(Countries, country)
}

func IsRegistrationCountry(country string) bool {
	return slices.Contains(RegistrationCountries, country)
}

func IsKnownGroup(group string) bool {
	return slices.Contains(Groups, group)
}
