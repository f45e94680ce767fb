package policy

import "errors"

// returned for a generation type the policy does not know. Malformed input
// is rejected outright instead of falling back to a default cost, which
// would open a quota bypass for crafted request bodies.
var ErrUnknownGenerationType = errors.New("unknown generation type")

// returns the production quota policy
func Default() Policy {
	return Policy{
		costs: map[GenerationType]int{
			GenerationSVG:   2,
			GenerationIcon:  1,
			GenerationVideo: 6,
		},
		dailyCaps: map[GenerationType]int{
			GenerationSVG:  1,
			GenerationIcon: 2,
			// video stays at 0: anonymous visitors cannot generate videos
		},
		monthlyAllowances: map[Tier]int{
			TierStarter: 100,
			TierPro:     350,
		},
		lifetimeGrant: 6,
	}
}

// builds a policy from explicit tables, for tests and future remote config
func New(costs, dailyCaps map[GenerationType]int, monthlyAllowances map[Tier]int, lifetimeGrant int) Policy {
	return Policy{
		costs:             costs,
		dailyCaps:         dailyCaps,
		monthlyAllowances: monthlyAllowances,
		lifetimeGrant:     lifetimeGrant,
	}
}

// returns the credit cost of one generation of the given type
func (p Policy) Cost(t GenerationType) (int, error) {
	cost, ok := p.costs[t]
	if !ok {
		return 0, ErrUnknownGenerationType
	}

	return cost, nil
}

// returns the anonymous per-day cap for the given type; a cap of zero means
// the type is not available without an account
func (p Policy) DailyCap(t GenerationType) (int, error) {
	if _, ok := p.costs[t]; !ok {
		return 0, ErrUnknownGenerationType
	}

	return p.dailyCaps[t], nil
}

// returns the monthly credit allowance for a tier (zero for unknown tiers)
func (p Policy) MonthlyAllowance(tier Tier) int {
	return p.monthlyAllowances[tier]
}

// returns the one-time credit grant for a newly provisioned account
func (p Policy) LifetimeGrant() int {
	return p.lifetimeGrant
}

// parses a request-supplied generation type string
func ParseGenerationType(s string) (GenerationType, error) {
	switch GenerationType(s) {
	case GenerationSVG, GenerationIcon, GenerationVideo:
		return GenerationType(s), nil
	}

	return "", ErrUnknownGenerationType
}

// parses a tier string from the subscription sync collaborator
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierNone, TierStarter, TierPro:
		return Tier(s), nil
	}

	return "", errors.New("unknown subscription tier")
}
