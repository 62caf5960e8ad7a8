package enums

import "fmt"

// District enumerates the delivery regions the storefront ships to.
type District string

const (
	DistrictDhaka      District = "dhaka"
	DistrictChittagong District = "chittagong"
	DistrictSylhet     District = "sylhet"
	DistrictRajshahi   District = "rajshahi"
	DistrictKhulna     District = "khulna"
	DistrictBarishal   District = "barishal"
	DistrictRangpur    District = "rangpur"
	DistrictMymensingh District = "mymensingh"
)

var validDistricts = []District{
	DistrictDhaka,
	DistrictChittagong,
	DistrictSylhet,
	DistrictRajshahi,
	DistrictKhulna,
	DistrictBarishal,
	DistrictRangpur,
	DistrictMymensingh,
}

// String implements fmt.Stringer.
func (d District) String() string {
	return string(d)
}

// IsValid reports whether the value is a known District.
func (d District) IsValid() bool {
	for _, candidate := range validDistricts {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDistrict converts raw input into a District.
func ParseDistrict(value string) (District, error) {
	for _, candidate := range validDistricts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid district %q", value)
}
