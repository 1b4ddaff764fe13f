package catalog

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Requirement is a fixed compliance rule with a category label and the
// descriptive text policy sections are matched against.
type Requirement struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Builtin returns the standard requirement catalog in its fixed order.
func Builtin() (requirements []Requirement) {
	requirements = []Requirement{
		{
			Category: "Documentation and Availability",
			Text:     "Framework must be well-documented and available to all relevant stakeholders",
		},
		{
			Category: "Roles and Responsibilities",
			Text:     "Clear definition of roles, responsibilities, and accountability structures",
		},
		{
			Category: "Risk Assessment",
			Text:     "Comprehensive risk assessment methodology and regular review processes",
		},
		{
			Category: "Security Controls",
			Text:     "Implementation of appropriate technical and organizational security controls",
		},
		{
			Category: "Incident Response",
			Text:     "Documented incident response procedures and reporting mechanisms",
		},
		{
			Category: "Compliance Monitoring",
			Text:     "Regular monitoring and evaluation of compliance with requirements",
		},
	}
	return requirements
}

// LoadFile reads a custom requirement catalog from a JSON file. Order in the
// file is preserved.
func LoadFile(path string) (requirements []Requirement, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read requirements file: %s", path)
		return requirements, err
	}

	err = json.Unmarshal(data, &requirements)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse requirements file: %s", path)
		return requirements, err
	}

	err = Validate(requirements)
	if err != nil {
		err = errors.Wrapf(err, "invalid requirements file: %s", path)
		return requirements, err
	}

	return requirements, err
}

// Validate checks that a catalog is nonempty with unique, fully populated
// entries.
func Validate(requirements []Requirement) (err error) {
	if len(requirements) == 0 {
		err = errors.New("requirement catalog is empty")
		return err
	}

	seen := make(map[string]bool, len(requirements))
	for i, req := range requirements {
		if req.Category == "" {
			err = errors.Errorf("requirement %d has no category", i)
			return err
		}
		if req.Text == "" {
			err = errors.Errorf("requirement %q has no text", req.Category)
			return err
		}
		if seen[req.Category] {
			err = errors.Errorf("duplicate requirement category: %s", req.Category)
			return err
		}
		seen[req.Category] = true
	}

	return err
}
