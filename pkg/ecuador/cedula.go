// Package ecuador valida identificadores y formatos ecuatorianos: cédula, RUC, teléfono celular
// y el código de producto usado por el catálogo.
package ecuador

import (
	"errors"
	"regexp"
	"unicode"
)

// Errores de validación (el texto se muestra tal cual al cliente).
var (
	ErrCedula      = errors.New("Cédula ecuatoriana inválida")
	ErrRUC         = errors.New("RUC inválido: debe tener entre 10 y 15 dígitos y, si tiene 13, terminar en 001")
	ErrPhone       = errors.New("teléfono inválido: debe iniciar con 09 y tener 10 dígitos")
	ErrProductCode = errors.New("código de producto inválido: 3 a 10 letras seguidas de 1 a 10 dígitos")
)

// número de provincias vigentes (01..24).
const maxProvince = 24

// coeficientes módulo 10 aplicados a los 9 primeros dígitos de la cédula.
var cedulaCoefficients = [9]int{2, 1, 2, 1, 2, 1, 2, 1, 2}

var (
	phoneRe       = regexp.MustCompile(`^09\d{8}$`)
	productCodeRe = regexp.MustCompile(`^[A-Za-z]{3,10}\d{1,10}$`)
)

// ValidateCedula verifica una cédula ecuatoriana: 10 dígitos, código de provincia 01-24,
// tercer dígito menor a 6 y dígito verificador módulo 10.
func ValidateCedula(cedula string) error {
	if len(cedula) != 10 || !allDigits(cedula) {
		return ErrCedula
	}
	province := int(cedula[0]-'0')*10 + int(cedula[1]-'0')
	if province < 1 || province > maxProvince {
		return ErrCedula
	}
	if cedula[2]-'0' >= 6 {
		return ErrCedula
	}
	if cedula[9] != CedulaVerifierDigit(cedula[:9]) {
		return ErrCedula
	}
	return nil
}

// CedulaVerifierDigit calcula el dígito verificador para los 9 primeros dígitos de una cédula.
// Los productos mayores a 9 se reducen restando 9.
func CedulaVerifierDigit(first9 string) byte {
	var sum int
	for i := 0; i < 9 && i < len(first9); i++ {
		p := int(first9[i]-'0') * cedulaCoefficients[i]
		if p > 9 {
			p -= 9
		}
		sum += p
	}
	return byte('0' + (10-sum%10)%10)
}

// ValidateRUC acepta 10 a 15 dígitos; en la forma de 13 dígitos exige el sufijo 001.
func ValidateRUC(ruc string) error {
	if len(ruc) < 10 || len(ruc) > 15 || !allDigits(ruc) {
		return ErrRUC
	}
	if len(ruc) == 13 && ruc[10:] != "001" {
		return ErrRUC
	}
	return nil
}

// ValidatePhone exige un celular ecuatoriano: 09 seguido de 8 dígitos.
func ValidatePhone(phone string) error {
	if !phoneRe.MatchString(phone) {
		return ErrPhone
	}
	return nil
}

// ValidateProductCode exige 3-10 letras seguidas de 1-10 dígitos (ej. PROD001).
func ValidateProductCode(code string) error {
	if !productCodeRe.MatchString(code) {
		return ErrProductCode
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) || r > unicode.MaxASCII {
			return false
		}
	}
	return s != ""
}
