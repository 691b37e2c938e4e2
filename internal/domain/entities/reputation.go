package entities

// ReputationKind tags the variant held by a ReputationResult
type ReputationKind int

// Reputation result variants
const (
	ReputationKindNotFound ReputationKind = iota
	ReputationKindFound
	ReputationKindServiceError
)

func (k ReputationKind) String() string {
	switch k {
	case ReputationKindFound:
		return "found"
	case ReputationKindServiceError:
		return "service-error"
	default:
		return "not-found"
	}
}

// AnalysisStats holds per-engine counts from the reputation service
type AnalysisStats struct {
	Malicious  int
	Suspicious int
	Harmless   int
	Undetected int
}

// ReputationResult is the normalized answer of the reputation service.
// Stats is meaningful for Found; Code and Message for ServiceError.
type ReputationResult struct {
	Kind    ReputationKind
	Stats   AnalysisStats
	Code    int
	Message string
}

// ReputationFound builds a Found result
func ReputationFound(stats AnalysisStats) ReputationResult {
	return ReputationResult{Kind: ReputationKindFound, Stats: stats}
}

// ReputationNotFound builds a NotFound result
func ReputationNotFound() ReputationResult {
	return ReputationResult{Kind: ReputationKindNotFound}
}

// ReputationError builds a ServiceError result. Code 0 means no HTTP status was received.
func ReputationError(code int, message string) ReputationResult {
	return ReputationResult{Kind: ReputationKindServiceError, Code: code, Message: message}
}
