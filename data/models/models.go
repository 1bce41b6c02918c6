package models

import (
	"fmt"

	"github.com/go-playground/validator"
)

type Model interface {
	TableName() string
	GetID() string
	EmptySlice() interface{}
}

// A single validator instance is shared by every model; it caches struct
// metadata after the first call.
var validate = validator.New()

// Validator exposes the shared validator so other packages validate against
// the same cache.
func Validator() *validator.Validate {
	return validate
}

// ValidateModel validates a model using the go-playground/validator package. It
// returns an error if the provided argument does not implement the Model
// interface.
func ValidateModel(model interface{}) error {
	m, ok := model.(Model)
	if !ok {
		return fmt.Errorf("expected model, got %T", model)
	}

	if err := validate.Struct(m); err != nil {
		return err
	}
	return nil
}
