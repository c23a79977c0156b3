package shanghai

const (
	// General
	UnsetValue = -1

	// Table limits
	MinTablePlayerCount = 2
	MaxTablePlayerCount = 12

	// Engine defaults
	DefaultNumDecks     = 3
	DefaultHandSize     = 11
	DefaultBuysPerRound = 2

	// Animation event types
	AnimationType_Draw        = "draw"
	AnimationType_DrawDiscard = "drawDiscard"
	AnimationType_Discard     = "discard"
	AnimationType_Buy         = "buy"

	// Meld rejection reason surfaced to the acting player
	MeldRejectReason_Contract = "does not satisfy contract"
)
