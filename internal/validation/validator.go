package validation

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Registration field formats. The cpf is the 11-digit national id with
// every separator optional individually.
const (
	emailPattern = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	cpfPattern   = `^\d{3}\.?\d{3}\.?\d{3}-?\d{2}$`
)

var (
	emailRegexp = regexp.MustCompile(emailPattern)
	cpfRegexp   = regexp.MustCompile(cpfPattern)
)

type clientFields struct {
	Name  string `validate:"required"`
	Email string `validate:"required,store_email"`
	CPF   string `validate:"required,cpf"`
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("store_email", func(fl validator.FieldLevel) bool {
		return emailRegexp.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return cpfRegexp.MatchString(fl.Field().String())
	})
	return &Validator{v: v}
}

// Client checks the registration fields and reports the first violation.
func (v *Validator) Client(name, email, cpf string) error {
	err := v.v.Struct(clientFields{Name: name, Email: email, CPF: cpf})
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if errors.As(err, &violations) && len(violations) > 0 {
		switch violations[0].Field() {
		case "Name":
			return errors.New("client name must be provided")
		case "Email":
			return errors.New("invalid email")
		case "CPF":
			return errors.New("invalid cpf")
		}
	}
	return err
}
