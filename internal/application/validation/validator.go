// Package validation envuelve go-playground/validator con las reglas propias del dominio
// (cédula, RUC, teléfono celular, código de producto) y traduce los errores a domain.ErrInvalidInput.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/pkg/ecuador"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// decimal.Decimal se valida como número para que gt=0 / gte=0 funcionen.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Los mensajes usan el nombre JSON del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	mustRegister(v, "cedula_ec", ecuador.ValidateCedula)
	mustRegister(v, "ruc", ecuador.ValidateRUC)
	mustRegister(v, "phone_ec", ecuador.ValidatePhone)
	mustRegister(v, "product_code", ecuador.ValidateProductCode)
	return v
}

func mustRegister(v *validator.Validate, tag string, check func(string) error) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return check(fl.Field().String()) == nil
	})
	if err != nil {
		panic(fmt.Sprintf("validation: registrar %s: %v", tag, err))
	}
}

// Struct valida s según sus tags. Devuelve un *domain.Error de tipo ErrInvalidInput
// con el mensaje del primer campo inválido, o nil.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.Errorf(domain.ErrInvalidInput, "entrada inválida: %v", err)
	}
	return domain.Errorf(domain.ErrInvalidInput, "%s", message(verrs[0]))
}

// Límites de los importes: dos decimales y hasta doce dígitos enteros.
const (
	moneyScale     = 2
	moneyMaxDigits = 12
)

var moneyMax = decimal.New(1, moneyMaxDigits)

// Money verifica que un importe tenga como máximo dos decimales y un valor representable.
// Los tags gt/gte comparan sobre float64 y no detectan escalas fuera de rango.
func Money(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(moneyScale)) {
		return domain.Errorf(domain.ErrInvalidInput, "el campo %s admite como máximo %d decimales", field, moneyScale)
	}
	if d.Abs().GreaterThanOrEqual(moneyMax) {
		return domain.Errorf(domain.ErrInvalidInput, "el campo %s excede el máximo permitido", field)
	}
	return nil
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("el campo %s es requerido", field)
	case "max":
		return fmt.Sprintf("el campo %s admite como máximo %s caracteres", field, fe.Param())
	case "gt":
		return fmt.Sprintf("el campo %s debe ser mayor a %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("el campo %s debe ser mayor o igual a %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("el campo %s no es un email válido", field)
	case "cedula_ec":
		return ecuador.ErrCedula.Error()
	case "ruc":
		return ecuador.ErrRUC.Error()
	case "phone_ec":
		return ecuador.ErrPhone.Error()
	case "product_code":
		return ecuador.ErrProductCode.Error()
	default:
		return fmt.Sprintf("el campo %s es inválido (%s)", field, fe.Tag())
	}
}
