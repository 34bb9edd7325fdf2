package policying

import "errors"

var (
	// ErrNoPolicyAvailable bloqueia a análise: é preciso cadastrar uma política antes
	ErrNoPolicyAvailable       = errors.New("no global policy available")
	ErrPolicySelectionRequired = errors.New("a policy must be selected")
	ErrUnknownPolicy           = errors.New("selected policy does not exist")
	ErrInvalidIntent           = errors.New("invalid analysis intent")
)
