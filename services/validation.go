package services

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/rpupo63/devfolio-backend/errs"
)

// urlPattern accepts http(s)://host(.tld)+ followed by optional path segments.
var urlPattern = regexp.MustCompile(`^(http|https)://[a-zA-Z0-9_.\-]+(?:\.[a-zA-Z]{2,})+(?:/[\w\-.~:/?#\[\]@!$&'()*+,;=]+)*$`)

const invalidURL = "Invalid URL format"

func validURL() validation.Rule {
	return validation.Match(urlPattern).Error(invalidURL)
}

func notBlank(message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return errors.New(message)
		}
		return nil
	})
}

// Validate checks every field and reports all violations together.
func (in DeveloperInput) Validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Name,
			validation.Required.Error("Name must be between 2 and 50 characters"),
			validation.RuneLength(2, 50).Error("Name must be between 2 and 50 characters"),
		),
		validation.Field(&in.Surname,
			validation.Required.Error("Surname must be between 2 and 50 characters"),
			validation.RuneLength(2, 50).Error("Surname must be between 2 and 50 characters"),
		),
		validation.Field(&in.Email,
			validation.Required.Error("Email should be valid"),
			is.EmailFormat.Error("Email should be valid"),
		),
		validation.Field(&in.LinkedinURL, validURL()),
		validation.Field(&in.GithubURL, validURL()),
	))
}

func (in ProjectInput) Validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Name, notBlank("Name cannot be empty")),
		validation.Field(&in.Description,
			validation.Required.Error("Description must be between 2 and 50 characters"),
			validation.RuneLength(2, 50).Error("Description must be between 2 and 50 characters"),
		),
		validation.Field(&in.StartDate,
			validation.Required.Error("Start date is required"),
			validation.Date(DateLayout).Error("Start date must use the YYYY-MM-DD format"),
		),
		validation.Field(&in.EndDate,
			validation.Date(DateLayout).Error("End date must use the YYYY-MM-DD format"),
		),
		validation.Field(&in.RepositoryURL, validURL()),
		validation.Field(&in.DemoURL, validURL()),
	))
}

func (in TechnologyInput) Validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.ID,
			validation.Required.Error("Id cannot be null"),
			validation.Min(1).Error("Id must be a positive number"),
		),
	))
}

// asValidationError flattens ozzo field errors into one "field: message" line
// per violation, sorted by field name.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return errs.NewInternalErrorWithCause("validation rules are misconfigured", err)
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	for _, field := range fields {
		b.WriteString(field)
		b.WriteString(": ")
		b.WriteString(fieldErrs[field].Error())
		b.WriteString("\n")
	}
	return errs.NewValidationError(b.String())
}
