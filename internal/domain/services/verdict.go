// Package services implements domain business logic and use cases.
package services

import (
	"fmt"

	"github.com/ochairo/unipkg/internal/domain/entities"
	"github.com/ochairo/unipkg/internal/domain/interfaces/services"
)

// verdictService implements VerdictService with pure business logic
type verdictService struct {
	notFound entities.NotFoundPolicy
}

// NewVerdictService creates a verdict engine for the given policy
func NewVerdictService(policy entities.PolicyConfig) services.VerdictService {
	notFound := policy.NotFound
	if notFound == "" {
		notFound = entities.NotFoundAllow
	}
	return &verdictService{notFound: notFound}
}

// Decide maps a reputation result to a verdict.
// Malicious is checked strictly before suspicious: any malicious detection blocks.
func (s *verdictService) Decide(result entities.ReputationResult) entities.Verdict {
	switch result.Kind {
	case entities.ReputationKindFound:
		stats := result.Stats
		if stats.Malicious > 0 {
			return entities.Block(fmt.Sprintf("%d engine(s) flagged the artifact as malicious", stats.Malicious))
		}
		if stats.Suspicious > 0 {
			return entities.AllowWithWarning(fmt.Sprintf("%d engine(s) flagged the artifact as suspicious", stats.Suspicious))
		}
		return entities.Allow()

	case entities.ReputationKindServiceError:
		if result.Code == 0 {
			return entities.Indeterminate(fmt.Sprintf("reputation service error: %s", result.Message))
		}
		return entities.Indeterminate(fmt.Sprintf("reputation service error %d: %s", result.Code, result.Message))

	default:
		if s.notFound == entities.NotFoundWarn {
			return entities.AllowWithWarning("the reputation service has no record of this artifact")
		}
		return entities.Allow()
	}
}

// Escalate raises Allow and AllowWithWarning to Indeterminate
func (s *verdictService) Escalate(verdict entities.Verdict, reason string) entities.Verdict {
	if verdict.Kind.Severity() >= entities.VerdictIndeterminate.Severity() {
		return verdict
	}
	if verdict.Reason != "" {
		reason = reason + "; " + verdict.Reason
	}
	return entities.Indeterminate(reason)
}
