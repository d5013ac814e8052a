package controllers

import (
	"errors"
	"sync"

	"edumaster/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the school-specific binding tags to gin's validator.
// Safe to call more than once.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		err = v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
			g := fl.Field().String()
			return g == "" || models.ValidGender(g)
		})
	})
	return err
}
