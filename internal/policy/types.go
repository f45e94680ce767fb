package policy

// GenerationType identifies a billable kind of generation request
type GenerationType string

const (
	GenerationSVG   GenerationType = "svg"
	GenerationIcon  GenerationType = "icon"
	GenerationVideo GenerationType = "video"
)

// Tier is the subscription level of an account
type Tier string

const (
	TierNone    Tier = "none"
	TierStarter Tier = "starter"
	TierPro     Tier = "pro"
)

// Policy is the immutable quota configuration: credit cost per generation
// type, anonymous daily cap per type, monthly allowance per tier, and the
// signup bonus granted to new accounts. It is injected where needed so tests
// can swap it out.
type Policy struct {
	costs             map[GenerationType]int
	dailyCaps         map[GenerationType]int
	monthlyAllowances map[Tier]int
	lifetimeGrant     int
}
