package openweather

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/clima/internal/weather"
)

var validate = newPayloadValidator()

// payload mirrors the subset of the current-weather response that is used.
// Pointers distinguish an absent key from a zero value.
type payload struct {
	Name    *string     `json:"name" validate:"required"`
	Main    *mainBlock  `json:"main" validate:"required"`
	Weather []condition `json:"weather" validate:"required,dive"`
}

type mainBlock struct {
	Temp *float64 `json:"temp" validate:"required"`
}

type condition struct {
	ID          *int   `json:"id" validate:"required"`
	Description string `json:"description"`
}

func newPayloadValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Decode turns a raw current-weather payload into a Model. Only the first
// condition entry is used. Temperatures are taken as-is; the unit is chosen
// by the request.
func Decode(data []byte) (weather.Model, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return weather.Model{}, fmt.Errorf("%w: %w", weather.ErrDecode, err)
	}

	if p.Weather != nil && len(p.Weather) == 0 {
		return weather.Model{}, weather.ErrEmptyConditions
	}

	if err := validate.Struct(p); err != nil {
		return weather.Model{}, fmt.Errorf("%w: %s", weather.ErrDecode, describeMissing(err))
	}

	first := p.Weather[0]
	return weather.NewModel(*first.ID, *p.Name, *p.Main.Temp), nil
}

func describeMissing(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		ns := fe.Namespace()
		// drop the root struct name
		if i := strings.IndexByte(ns, '.'); i >= 0 {
			ns = ns[i+1:]
		}
		fields = append(fields, ns)
	}
	return "missing " + strings.Join(fields, ", ")
}
