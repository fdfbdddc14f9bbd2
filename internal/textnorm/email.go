package textnorm

import "strings"

// DomainType classifies the kind of organization behind an email domain.
type DomainType string

const (
	DomainEducational DomainType = "educational"
	DomainGovernment  DomainType = "government"
	DomainMedical     DomainType = "medical"
	DomainCorporate   DomainType = "corporate"
	DomainPersonal    DomainType = "personal"
	DomainUnknown     DomainType = "unknown"
)

// DomainInfo is the result of classifying an email domain.
type DomainInfo struct {
	Type           DomainType
	InferredSector string
}

var freeMailProviders = map[string]bool{
	"gmail.com":   true,
	"yahoo.com":   true,
	"hotmail.com": true,
	"outlook.com": true,
}

var corporateIndicators = []string{"corp", "inc", "company", "business"}

// ExtractEmailDomainInfo classifies an email address by its domain using
// ordered suffix and substring checks. Returns a zero DomainInfo when the
// input is not an email address.
func ExtractEmailDomainInfo(email string) DomainInfo {
	at := strings.Index(email, "@")
	if at < 0 {
		return DomainInfo{}
	}
	domain := strings.ToLower(email[at+1:])

	switch {
	case strings.HasSuffix(domain, ".edu.ph") || strings.HasSuffix(domain, ".edu"):
		return DomainInfo{Type: DomainEducational, InferredSector: "Education"}
	case strings.HasSuffix(domain, ".gov.ph") || strings.HasSuffix(domain, ".gov"):
		return DomainInfo{Type: DomainGovernment, InferredSector: "Government"}
	case strings.Contains(domain, "hospital") || strings.Contains(domain, "medical") || strings.Contains(domain, "clinic"):
		return DomainInfo{Type: DomainMedical, InferredSector: "Medical"}
	}

	for _, indicator := range corporateIndicators {
		if strings.Contains(domain, indicator) {
			return DomainInfo{Type: DomainCorporate, InferredSector: "Business"}
		}
	}

	if freeMailProviders[domain] {
		return DomainInfo{Type: DomainPersonal}
	}
	return DomainInfo{Type: DomainUnknown}
}
