package infer

import "strings"

// AddressType classifies a free-text address as professional, residential,
// mixed, or unknown.
type AddressType string

const (
	AddressProfessional AddressType = "professional"
	AddressResidential  AddressType = "residential"
	AddressMixed        AddressType = "mixed"
	AddressUnknown      AddressType = "unknown"
)

var professionalAddressIndicators = []string{
	"office", "building", "tower", "plaza", "center", "centre",
	"floor", "suite", "room", "unit", "hospital", "clinic",
	"law office", "firm", "corporation", "company", "inc",
	"makati cbd", "ortigas center", "bgc", "eastwood",
}

var residentialAddressIndicators = []string{
	"subdivision", "village", "homes", "residence", "street",
	"avenue", "road", "barangay", "district", "blk", "lot",
}

// InferAddressType scores an address against professional and residential
// indicator vocabularies. Equal scores give AddressMixed.
func InferAddressType(address string) AddressType {
	if strings.TrimSpace(address) == "" {
		return AddressUnknown
	}
	lower := strings.ToLower(address)
	var professional, residential int
	for _, ind := range professionalAddressIndicators {
		if strings.Contains(lower, ind) {
			professional++
		}
	}
	for _, ind := range residentialAddressIndicators {
		if strings.Contains(lower, ind) {
			residential++
		}
	}
	switch {
	case professional > residential:
		return AddressProfessional
	case residential > professional:
		return AddressResidential
	default:
		return AddressMixed
	}
}
