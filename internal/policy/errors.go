package policy

import "errors"

var (
	// ErrGrammarEmpty is returned when the grammar declares no resources
	// or no actions; an empty vocabulary cannot validate any rule.
	ErrGrammarEmpty = errors.New("policy grammar declares no resources or actions")

	// ErrUnknownResource is returned when a rule references a resource the
	// grammar does not declare.
	ErrUnknownResource = errors.New("rule references undeclared resource")

	// ErrUnknownAction is returned when a rule references an action the
	// grammar does not declare.
	ErrUnknownAction = errors.New("rule references undeclared action")

	// ErrNotInitialized is returned by Initialize when called with a nil
	// table loader.
	ErrNotInitialized = errors.New("policy table loader is nil")
)
