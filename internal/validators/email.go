package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// IsEmailValid confere só a sintaxe; o endereço do cliente é opcional e não é contatado.
func IsEmailValid(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	return validate.Var(email, "required,email") == nil
}
