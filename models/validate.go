// ABOUTME: Input validation rules for projects and protocols
// ABOUTME: Uses ozzo-validation; callers translate failures into ValidationError
package models

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var projectCodeRe = regexp.MustCompile(`^[A-Z]{2,4}$`)

// ValidateProject checks the fields a project needs before it can be saved.
// Code uniqueness is enforced by the store.
func ValidateProject(p *Project) error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Code,
			validation.Required,
			validation.Match(projectCodeRe).Error("muss aus 2-4 Großbuchstaben bestehen"),
		),
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
	)
}

// ValidateProtocol checks type and series naming rules.
func ValidateProtocol(p *Protocol) error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Type, validation.Required, validation.In(
			TypePlanung, TypeMieter, TypeBauherr, TypeBaubesprechung, TypeAktennotiz,
		)),
		validation.Field(&p.SeriesName, validation.Length(0, 200)),
	)
}

// ValidateAttachmentSize enforces the payload cap before any state changes.
func ValidateAttachmentSize(data []byte) error {
	if len(data) > MaxAttachmentSize {
		return &ValidationError{Field: "fileData", Message: "Datei größer als 2 MB"}
	}
	return nil
}
