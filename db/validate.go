package db

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/xpsychometrics/collabmap/graph/model"
)

var validate = validator.New()

// Validate checks a dataset loaded from an untrusted source: struct tags,
// plus unique record ids, since those become element ids on the surface.
func Validate(ds *model.Dataset) error {
	if ds == nil {
		return errors.New("dataset is nil")
	}
	if err := validate.Struct(ds); err != nil {
		return formatValidationError(err)
	}
	for i, record := range ds.Collaborations {
		if Contains(ds.Collaborations[:i], record.ID(), model.CollaborationRecord.ID) {
			return errors.Errorf("duplicate institution '%s'", record.Institution)
		}
		if record.ID() == ds.Center.ID {
			return errors.Errorf("institution '%s' collides with the center id", record.Institution)
		}
	}
	return nil
}

func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrs) == 0 {
		return err
	}
	e := validationErrs[0]
	switch e.Tag() {
	case "required":
		return errors.Errorf("%s: field is required", e.Namespace())
	default:
		return errors.Errorf("%s: validation failed (%s=%s, got '%v')", e.Namespace(), e.Tag(), e.Param(), e.Value())
	}
}
