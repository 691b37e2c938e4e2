package prompt

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"github.com/ochairo/unipkg/internal/domain/entities"
)

// ManagerSelector lets the operator pick the package manager when none was given
type ManagerSelector struct {
	ask askFunc
}

// NewManagerSelector creates a selector backed by survey
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewManagerSelector() *ManagerSelector {
	return &ManagerSelector{ask: survey.AskOne}
}

// Select asks which ecosystem the package belongs to
func (s *ManagerSelector) Select(pkg string) (entities.Ecosystem, error) {
	options := make([]string, 0, len(entities.Ecosystems()))
	for _, eco := range entities.Ecosystems() {
		options = append(options, eco.String())
	}

	var answer string
	prompt := &survey.Select{
		Message: fmt.Sprintf("Which package manager should install %s?", pkg),
		Options: options,
	}
	if err := s.ask(prompt, &answer); err != nil {
		return "", fmt.Errorf("manager selection failed: %w", err)
	}
	return entities.ParseEcosystem(answer)
}
