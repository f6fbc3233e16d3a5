package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// keyDelimiter separa os componentes das chaves compostas (CITY#<city>#<country>).
const keyDelimiter = "#"

type ConfigValidator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *ConfigValidator {
	return &ConfigValidator{
		validate: validator.New(),
	}
}

// Validate realiza validações estruturais (tags) e semânticas (lógica)
func (cv *ConfigValidator) Validate(cfg *ProbeConfig) error {
	if cfg == nil {
		return errors.New("configuração ausente")
	}

	if err := cv.validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errMsgs := make([]string, 0, len(validationErrors))
			for _, e := range validationErrors {
				errMsgs = append(errMsgs, fmt.Sprintf("Campo '%s' falhou na regra '%s'", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("erros de validação estrutural:\n- %s", strings.Join(errMsgs, "\n- "))
		}
		return fmt.Errorf("erro de validação estrutural: %w", err)
	}

	if err := cv.validateSemantics(cfg); err != nil {
		return fmt.Errorf("erro de validação semântica: %w", err)
	}

	return nil
}

func (cv *ConfigValidator) validateSemantics(cfg *ProbeConfig) error {
	// city e country compõem o GSI1PK; o delimitador quebraria a chave
	parts := [][2]string{{"city", cfg.Probes.City}, {"country", cfg.Probes.Country}}
	for _, p := range parts {
		if strings.Contains(p[1], keyDelimiter) {
			return fmt.Errorf("%s '%s' não pode conter '%s'", p[0], p[1], keyDelimiter)
		}
	}

	return nil
}
