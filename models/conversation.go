package models

// Dialogue steps name the slot currently being solicited. The step is a hint
// for the caller/UI; the agent always recomputes the next unmet slot from the
// slot values themselves.
const (
	StepAskLocation      = "ask_location"
	StepAskHouseholdSize = "ask_household_size"
	StepAskConsumption   = "ask_consumption"
	StepAskCost          = "ask_cost"
	StepAskPreferences   = "ask_preferences"
)

// ConversationState is the caller-owned record threaded through every turn.
// The server never stores it; the client receives the updated state with each
// response and supplies it again on the next turn.
type ConversationState struct {
	Active        bool    `json:"active"`
	Location      string  `json:"location"`       // 5-digit postal code (PLZ)
	HouseholdSize int     `json:"household_size"` // 1-5 persons, 0 = unset
	Consumption   string  `json:"consumption"`    // kWh/year
	Cost          string  `json:"cost"`           // current cost, units not tracked
	Preferences   string  `json:"preferences"`    // comma-joined subset of green/cost/service/local/tech
	Step          string  `json:"step"`
	Offers        []Offer `json:"offers,omitempty"` // top-ranked offers, set on completion
}

// NewConversationState returns the fresh default state used for the first
// turn and for explicit resets.
func NewConversationState() *ConversationState {
	return &ConversationState{Step: StepAskLocation}
}

// Offer is one candidate energy tariff as returned by the offer source.
type Offer struct {
	Provider string `json:"provider"`
	Tariff   string `json:"tariff"`
	Price    string `json:"price"` // display string, not guaranteed numeric
	Green    bool   `json:"green"`
	Service  bool   `json:"service"`
	Local    bool   `json:"local"`
	Tech     bool   `json:"tech"`
}

// TurnResult is what one dialogue turn produces.
type TurnResult struct {
	AgentResponse string             `json:"agent_response"`
	State         *ConversationState `json:"state"`
	Done          bool               `json:"done"`
}
