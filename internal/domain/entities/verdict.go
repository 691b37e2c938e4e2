package entities

// VerdictKind classifies a reputation result before any operator override
type VerdictKind string

// Verdict kinds, ordered by severity in Severity()
const (
	VerdictAllow            VerdictKind = "allow"
	VerdictAllowWithWarning VerdictKind = "allow_with_warning"
	VerdictIndeterminate    VerdictKind = "indeterminate"
	VerdictBlock            VerdictKind = "block"
)

// Severity orders verdict kinds from least (0) to most severe
func (k VerdictKind) Severity() int {
	switch k {
	case VerdictAllow:
		return 0
	case VerdictAllowWithWarning:
		return 1
	case VerdictIndeterminate:
		return 2
	case VerdictBlock:
		return 3
	default:
		return 2
	}
}

// Verdict is the policy classification plus a human readable reason
type Verdict struct {
	Kind   VerdictKind
	Reason string
}

// Allow builds an Allow verdict
func Allow() Verdict {
	return Verdict{Kind: VerdictAllow}
}

// AllowWithWarning builds a warning verdict
func AllowWithWarning(reason string) Verdict {
	return Verdict{Kind: VerdictAllowWithWarning, Reason: reason}
}

// Block builds a Block verdict
func Block(reason string) Verdict {
	return Verdict{Kind: VerdictBlock, Reason: reason}
}

// Indeterminate builds an Indeterminate verdict
func Indeterminate(reason string) Verdict {
	return Verdict{Kind: VerdictIndeterminate, Reason: reason}
}

// RequiresPrompt reports whether the operator must be asked before proceeding
func (v Verdict) RequiresPrompt() bool {
	return v.Kind != VerdictAllow
}
