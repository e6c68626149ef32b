package validator

import (
	"ctchen222/Tic-Tac-Toe-Online/internal/game"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// "symbol" accepts X or O only.
	if err := validate.RegisterValidation("symbol", func(fl validator.FieldLevel) bool {
		return game.Symbol(fl.Field().String()).Valid()
	}); err != nil {
		panic(err)
	}
}

// GetValidator returns the process-wide validator.
func GetValidator() *validator.Validate {
	return validate
}
