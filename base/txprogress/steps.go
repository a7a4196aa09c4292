package txprogress

// Step is one narrated stage of a multi-step operation
type Step struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Kind string

const (
	KindListing  Kind = "listing"
	KindPurchase Kind = "purchase"
	KindBid      Kind = "bid"
)

var defaultSteps = map[Kind][]Step{
	KindListing: {
		{Title: "Approval", Description: "Approve marketplace contract"},
		{Title: "Upload", Description: "Upload item metadata to IPFS"},
		{Title: "Listing", Description: "Create marketplace listing"},
		{Title: "Confirmation", Description: "Waiting for confirmation"},
	},
	KindPurchase: {
		{Title: "Approval", Description: "Approve payment token"},
		{Title: "Purchase", Description: "Submit purchase transaction"},
		{Title: "Transfer", Description: "Transfer item ownership"},
		{Title: "Confirmation", Description: "Waiting for confirmation"},
	},
	KindBid: {
		{Title: "Approval", Description: "Approve bid amount"},
		{Title: "Bidding", Description: "Place your bid"},
		{Title: "Verification", Description: "Verify bid placement"},
		{Title: "Confirmation", Description: "Waiting for confirmation"},
	},
}

// DefaultSteps returns a copy of the built-in step list for kind, or nil for an unknown kind.
func DefaultSteps(kind Kind) []Step {
	steps, ok := defaultSteps[kind]
	if !ok {
		return nil
	}
	return append([]Step(nil), steps...)
}
