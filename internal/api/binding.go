package api

import (
	"reflect"
	"slices"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/accesshub/campus-back/internal/models"
	"github.com/accesshub/campus-back/internal/validation"
)

// RegisterBindings installs the wire-format validators used in request
// struct tags: dayofweek (SUNDAY..SATURDAY), timeofday (HH:MM:SS) and
// dateonly (YYYY-MM-DD). Field errors report the json name so the 422
// message matches what the client sent.
func RegisterBindings() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("dayofweek", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.DaysOfWeek, fl.Field().String())
	})
	v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		_, err := validation.ParseTimeOfDay(fl.Field().String())
		return err == nil
	})
	v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
		_, err := validation.ParseDate(fl.Field().String())
		return err == nil
	})
}
