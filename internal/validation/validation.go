// Package validation normalizes and rejects raw input before it reaches
// persistence. All functions are pure: they either normalize the record in
// place or return a structured rejection, and never touch the database.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"relieflink/internal/models"
)

// Field length and quantity limits.
const (
	MinItemNameLen = 2
	MaxItemNameLen = 255
	MaxUnitLen     = 50
	MaxDescLen     = 5000
	MinLocationLen = 3
	MaxLocationLen = 500
	MaxNameLen     = 255
	MaxContactLen  = 255
	MaxNotesLen    = 2000
	MaxQuantity    = 1000000
	MaxPerPage     = 100
	DefaultPerPage = 50
)

// FieldError is a single field-level rejection.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors collects field-level rejections for one input record.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// orNil returns the collected errors as an error, or nil if there are none.
// A typed nil slice must not escape as a non-nil error interface.
func (e Errors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// dangerousPatterns matches markup that must never reach storage.
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`),
	regexp.MustCompile(`(?is)<iframe[^>]*>.*?</iframe>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)onerror=`),
	regexp.MustCompile(`(?i)onload=`),
}

// SanitizeText trims whitespace and strips HTML-significant fragments.
func SanitizeText(text string) string {
	result := strings.TrimSpace(text)
	for _, pattern := range dangerousPatterns {
		result = pattern.ReplaceAllString(result, "")
	}
	return result
}

// ValidateRequestCreate normalizes in in place and returns field-level
// rejections if the input cannot form a valid request.
func ValidateRequestCreate(in *models.RequestInput) error {
	var errs Errors

	in.ItemName = SanitizeText(in.ItemName)
	errs = append(errs, checkItemName(in.ItemName)...)

	errs = append(errs, checkQuantity("quantity_needed", in.QuantityNeeded)...)

	in.Unit = SanitizeText(in.Unit)
	errs = append(errs, checkUnit(in.Unit)...)

	in.Description = SanitizeText(in.Description)
	if len(in.Description) > MaxDescLen {
		errs = append(errs, FieldError{"description", fmt.Sprintf("too long (max %d characters)", MaxDescLen)})
	}

	return errs.orNil()
}

// ValidateRequestPatch normalizes the present fields in place and returns
// field-level rejections for any invalid ones.
func ValidateRequestPatch(p *models.RequestPatch) error {
	var errs Errors

	if p.ItemName != nil {
		*p.ItemName = SanitizeText(*p.ItemName)
		errs = append(errs, checkItemName(*p.ItemName)...)
	}
	if p.QuantityNeeded != nil {
		errs = append(errs, checkQuantity("quantity_needed", *p.QuantityNeeded)...)
	}
	if p.Unit != nil {
		*p.Unit = SanitizeText(*p.Unit)
		errs = append(errs, checkUnit(*p.Unit)...)
	}
	if p.Description != nil {
		*p.Description = SanitizeText(*p.Description)
		if len(*p.Description) > MaxDescLen {
			errs = append(errs, FieldError{"description", fmt.Sprintf("too long (max %d characters)", MaxDescLen)})
		}
	}
	if p.Status != nil && !models.ValidStatus(*p.Status) {
		errs = append(errs, FieldError{"status", `must be "open" or "closed"`})
	}

	return errs.orNil()
}

// ValidateResponseCreate normalizes in in place and returns field-level
// rejections if the input cannot form a valid response.
func ValidateResponseCreate(in *models.ResponseInput) error {
	var errs Errors

	errs = append(errs, checkQuantity("quantity_available", in.QuantityAvailable)...)

	in.Location = SanitizeText(in.Location)
	if in.Location == "" {
		errs = append(errs, FieldError{"location", "cannot be empty"})
	} else if len(in.Location) < MinLocationLen {
		errs = append(errs, FieldError{"location", fmt.Sprintf("too short (min %d characters)", MinLocationLen)})
	} else if len(in.Location) > MaxLocationLen {
		errs = append(errs, FieldError{"location", fmt.Sprintf("too long (max %d characters)", MaxLocationLen)})
	}

	in.ResponderName = sanitizeOptional(in.ResponderName)
	if in.ResponderName != nil && len(*in.ResponderName) > MaxNameLen {
		errs = append(errs, FieldError{"responder_name", fmt.Sprintf("too long (max %d characters)", MaxNameLen)})
	}

	in.ResponderContact = sanitizeOptional(in.ResponderContact)
	if in.ResponderContact != nil && len(*in.ResponderContact) > MaxContactLen {
		errs = append(errs, FieldError{"responder_contact", fmt.Sprintf("too long (max %d characters)", MaxContactLen)})
	}

	in.Notes = sanitizeOptional(in.Notes)
	if in.Notes != nil && len(*in.Notes) > MaxNotesLen {
		errs = append(errs, FieldError{"notes", fmt.Sprintf("too long (max %d characters)", MaxNotesLen)})
	}

	return errs.orNil()
}

// ValidatePagination parses and bounds page/per_page query values.
func ValidatePagination(pageStr, perPageStr string) (page, perPage int, err error) {
	page = 1
	perPage = DefaultPerPage

	if pageStr != "" {
		page, err = strconv.Atoi(pageStr)
		if err != nil {
			return 0, 0, Errors{{"page", "must be an integer"}}
		}
	}
	if perPageStr != "" {
		perPage, err = strconv.Atoi(perPageStr)
		if err != nil {
			return 0, 0, Errors{{"per_page", "must be an integer"}}
		}
	}

	if page < 1 {
		return 0, 0, Errors{{"page", "must be >= 1"}}
	}
	if perPage < 1 || perPage > MaxPerPage {
		return 0, 0, Errors{{"per_page", fmt.Sprintf("must be between 1 and %d", MaxPerPage)}}
	}

	return page, perPage, nil
}

func checkItemName(name string) Errors {
	if name == "" {
		return Errors{{"item_name", "cannot be empty"}}
	}
	if len(name) < MinItemNameLen {
		return Errors{{"item_name", fmt.Sprintf("too short (min %d characters)", MinItemNameLen)}}
	}
	if len(name) > MaxItemNameLen {
		return Errors{{"item_name", fmt.Sprintf("too long (max %d characters)", MaxItemNameLen)}}
	}
	return nil
}

func checkUnit(unit string) Errors {
	if unit == "" {
		return Errors{{"unit", "cannot be empty"}}
	}
	if len(unit) > MaxUnitLen {
		return Errors{{"unit", fmt.Sprintf("too long (max %d characters)", MaxUnitLen)}}
	}
	return nil
}

func checkQuantity(field string, quantity int) Errors {
	if quantity <= 0 {
		return Errors{{field, "must be greater than 0"}}
	}
	if quantity > MaxQuantity {
		return Errors{{field, fmt.Sprintf("too large (max %d)", MaxQuantity)}}
	}
	return nil
}

func sanitizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	clean := SanitizeText(*s)
	if clean == "" {
		return nil
	}
	return &clean
}
