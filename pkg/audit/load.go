package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for details files that are neither JSON nor YAML.
var ErrUnknownFormat = errors.New("unknown audit details format")

// LoadDetails reads audit details from a .json, .yaml or .yml file.
func LoadDetails(path string) (Details, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Details{}, fmt.Errorf("failed to read audit details: %w", err)
	}
	return ParseDetails(data, filepath.Ext(path))
}

// ParseDetails decodes audit details. ext selects the decoder and includes
// the leading dot.
func ParseDetails(data []byte, ext string) (Details, error) {
	var details Details

	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &details); err != nil {
			return Details{}, fmt.Errorf("failed to decode audit details: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &details); err != nil {
			return Details{}, fmt.Errorf("failed to decode audit details: %w", err)
		}
	default:
		return Details{}, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	if details.Results == nil {
		details.Results = []Finding{}
	}
	return details, nil
}

// MockedDetails returns a fixed audit result used when no audit source is
// configured.
func MockedDetails() Details {
	return Details{
		Score: 72,
		Results: []Finding{
			{
				Type:        TypeError,
				Name:        "autocomplete-valid",
				Title:       "Autocomplete values must be valid",
				Description: "Use a standard autocomplete token so browsers can autofill the field.",
				Items: []Item{
					{Selector: "#email", HTML: `<input id="email" name="email" type="text" autocomplete="mail">`},
				},
			},
			{
				Type:        "warning",
				Name:        "label-for",
				Title:       "Labels should reference a form field",
				Description: "A label's for attribute should match the id of a field.",
				Items: []Item{
					{Selector: "label[for=phone]", HTML: `<label for="phone">Phone</label>`},
				},
			},
			{
				Type:        TypeError,
				Name:        "input-has-label",
				Title:       "Inputs need a label",
				Description: "Every visible input should have an associated label.",
				Items: []Item{
					{Selector: "#zip", HTML: `<input id="zip" name="zip">`},
					{Selector: "#city", HTML: `<input id="city" name="city">`},
				},
			},
			{
				Type:        "warning",
				Name:        "unique-ids",
				Title:       "Element ids should be unique",
				Description: "Duplicate ids break label association and autofill.",
				Items: []Item{
					{Selector: "form > input:nth-of-type(2)", HTML: `<input id="name" name="last-name">`},
				},
			},
		},
	}
}
