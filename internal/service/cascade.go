package service

import "github.com/prostate-cdss-server/internal/domain"

// stageRule is one (predicate, class) pair in an ordered cascade. Rules are
// evaluated in fixed order and the cascade stops at the first match, which
// makes precedence auditable rule-by-rule.
type stageRule struct {
	criterion string
	when      func() bool
	class     string
}

// runCascade evaluates rules top-to-bottom. The first matching rule's class
// becomes the verdict; every rule checked before it is recorded as a
// criterion not met. When nothing matches, fallback becomes the class.
func runCascade(rules []stageRule, fallback string) *domain.RuleVerdict {
	verdict := &domain.RuleVerdict{}
	for _, r := range rules {
		if r.when() {
			verdict.Class = r.class
			verdict.AddMet(r.criterion)
			return verdict
		}
		verdict.AddNotMet(r.criterion)
	}
	verdict.Class = fallback
	return verdict
}
