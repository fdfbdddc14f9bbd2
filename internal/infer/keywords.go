package infer

import "strings"

// professionCategories is the fixed keyword-category table driving
// profession scoring. Order matters: it is the deterministic tie-break and
// iteration order for scoring.
var professionCategories = []struct {
	name     string
	keywords []string
}{
	{"Legal", []string{
		"lawyer", "attorney", "counsel", "advocate", "legal", "law", "esq",
		"litigation", "corporate law", "family law", "criminal law",
		"real estate law", "tax law", "labor law",
	}},
	{"Medical", []string{
		"doctor", "physician", "md", "medical", "clinic", "hospital",
		"surgeon", "cardiologist", "pediatrician", "neurologist",
		"dentist", "nurse", "healthcare", "medicine",
	}},
	{"Business", []string{
		"business", "consultant", "manager", "executive", "ceo", "cfo",
		"entrepreneur", "finance", "accounting", "cpa", "marketing",
		"sales", "operations", "strategy",
	}},
	{"Engineering", []string{
		"engineer", "engineering", "pe", "civil", "electrical", "mechanical",
		"chemical", "software", "systems", "technical", "construction",
		"project manager", "architect",
	}},
	{"IT/Technology", []string{
		"programmer", "developer", "software", "it", "technology", "tech",
		"computer", "systems", "network", "database", "web", "mobile",
		"cybersecurity", "data scientist",
	}},
	{"Education", []string{
		"teacher", "professor", "educator", "principal", "dean",
		"academic", "research", "university", "school", "training",
	}},
	{"Government", []string{
		"government", "civil service", "public service", "bureau",
		"department", "ministry", "agency", "municipal", "federal",
	}},
	{"Real Estate", []string{
		"real estate", "broker", "realtor", "property", "development",
		"construction", "housing", "commercial", "residential",
	}},
}

// highConfidenceKeywords multiply their source's weight when present.
var highConfidenceKeywords = map[string]bool{
	"doctor": true, "physician": true, "lawyer": true, "attorney": true,
	"engineer": true, "professor": true, "teacher": true, "manager": true,
	"director": true, "ceo": true,
}

// companyDomains maps known email domains to a canonical employer name.
var companyDomains = map[string]string{
	"petron.com":        "Petron Corporation",
	"chevrontexaco.com": "Chevron Texaco",
	"ccbpi.com":         "Coca-Cola Beverages Philippines",
	"firstgas.com.ph":   "First Gas Holdings",
	"sun.com.ph":        "Sun Cellular",
	"mozcom.com":        "Mozcom",
	"pilnet.com":        "Philippine Network Foundation",
}

var genericMailDomains = map[string]bool{
	"yahoo.com":       true,
	"gmail.com":       true,
	"hotmail.com":     true,
	"edsamail.com.ph": true,
}

// specialization vocabularies, scanned as substrings of lowercased text.
var medicalSpecs = []string{
	"cardiology", "cardiologist", "pediatrics", "pediatrician",
	"neurology", "neurologist", "surgery", "surgeon",
	"dermatology", "dermatologist", "ophthalmology", "ophthalmologist",
	"psychiatry", "psychiatrist", "radiology", "radiologist",
}

var legalSpecs = []string{
	"family law", "corporate law", "criminal law", "tax law",
	"labor law", "real estate law", "intellectual property",
	"litigation", "corporate counsel",
}

var engineeringSpecs = []string{
	"civil engineering", "electrical engineering", "mechanical engineering",
	"chemical engineering", "software engineering", "systems engineering",
	"construction", "architecture",
}

var businessSpecs = []string{
	"accounting", "finance", "marketing", "human resources",
	"operations", "consulting", "strategy", "business development",
}

// MatchProfessionKeyword returns the profession category whose vocabulary
// appears as a substring of the lowercased text, scanning categories in
// table order. Empty when nothing matches.
func MatchProfessionKeyword(lower string) string {
	for _, cat := range professionCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				return cat.name
			}
		}
	}
	return ""
}

func allSpecializations() []string {
	out := make([]string, 0, len(medicalSpecs)+len(legalSpecs)+len(engineeringSpecs)+len(businessSpecs))
	out = append(out, medicalSpecs...)
	out = append(out, legalSpecs...)
	out = append(out, engineeringSpecs...)
	out = append(out, businessSpecs...)
	return out
}

// specializationFamilies filter candidate specializations by profession.
var specializationFamilies = map[string][]string{
	"Medical":     {"cardio", "pediatr", "neuro", "surg", "dermat", "ophthal", "psych", "radio"},
	"Legal":       {"law", "legal", "litigation", "counsel"},
	"Engineering": {"engineering", "engineer", "construction", "architect"},
}

// cityGazetteer lists Philippine cities and districts scanned for work
// location hints.
var cityGazetteer = []string{
	"makati", "manila", "quezon city", "pasig", "taguig", "mandaluyong",
	"pasay", "paranaque", "las pinas", "muntinlupa", "marikina",
	"cebu", "davao", "iloilo", "bacolod", "cagayan de oro",
	"ortigas", "bgc", "alabang", "eastwood", "rockwell",
}
