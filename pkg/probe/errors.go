package probe

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// ProbeError é a única categoria de falha: a chamada externa falhou.
type ProbeError struct {
	Probe string
	Err   error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %v", e.Probe, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// Code devolve o código de erro da AWS (ex: AccessDeniedException) quando
// a falha veio da API.
func (e *ProbeError) Code() string {
	var apiErr smithy.APIError
	if errors.As(e.Err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
