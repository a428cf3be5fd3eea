package engine

// PendingAction is a closed set of requests awaiting a human decision.
// At most one is outstanding at a time; the UI renders a prompt for
// whichever kind is set and clears it through the matching resolution
// call. Each variant carries only the fields it needs.
type PendingAction interface {
	PendingKind() string
}

// PendingPurchase offers the landing player a State-held space.
type PendingPurchase struct {
	Kind     string `json:"kind"`
	PlayerId string `json:"player_id"`
	SpaceId  int    `json:"space_id"`
	Price    int    `json:"price"` // rank discount already applied
}

// PendingPilfer lets a player crossing Red Square try to pilfer the
// treasury: a die roll of 4-6 steals, 1-3 imprisons.
type PendingPilfer struct {
	Kind     string `json:"kind"`
	PlayerId string `json:"player_id"`
}

// PendingDebt is an unpayable charge awaiting resolution: pay what can
// be paid, have a profiteer cover it, or go under.
type PendingDebt struct {
	Kind       string `json:"kind"`
	DebtorId   string `json:"debtor_id"`
	CreditorId string `json:"creditor_id"` // "" means the State
	Amount     int    `json:"amount"`
	Context    string `json:"context"`
}

// PendingTrivia is a loyalty-test question awaiting an answer.
type PendingTrivia struct {
	Kind       string `json:"kind"`
	PlayerId   string `json:"player_id"`
	QuestionId int    `json:"question_id"`
	Question   string `json:"question"`
	Difficulty string `json:"difficulty"`
}

// PendingCampPower is the Siberian camps one-shot: re-imprison a
// target, subject to Stalin's approval.
type PendingCampPower struct {
	Kind     string `json:"kind"`
	OwnerId  string `json:"owner_id"`
	TargetId string `json:"target_id"`
}

// PendingMinistryPower is the ministries one-shot: requisition a
// State-held space at no cost, subject to Stalin's approval.
type PendingMinistryPower struct {
	Kind    string `json:"kind"`
	OwnerId string `json:"owner_id"`
	SpaceId int    `json:"space_id"`
}

// PendingMediaRevote asks Stalin to reopen the last resolved tribunal.
type PendingMediaRevote struct {
	Kind    string `json:"kind"`
	OwnerId string `json:"owner_id"`
}

// PendingBribe is a Gulag bribe awaiting Stalin's pleasure. The money
// is already with the State either way.
type PendingBribe struct {
	Kind     string `json:"kind"`
	PlayerId string `json:"player_id"`
}

// PendingDisappear is the informant's one-shot: a property returns to
// the State, subject to Stalin's approval.
type PendingDisappear struct {
	Kind    string `json:"kind"`
	OwnerId string `json:"owner_id"`
	SpaceId int    `json:"space_id"`
}

// PendingSpeech is the Old Bolshevik's inspiring speech: Stalin
// designates which listeners applauded sincerely enough to pay.
type PendingSpeech struct {
	Kind    string `json:"kind"`
	OwnerId string `json:"owner_id"`
}

func (PendingPurchase) PendingKind() string      { return "purchase" }
func (PendingPilfer) PendingKind() string        { return "pilfer" }
func (PendingDebt) PendingKind() string          { return "debt" }
func (PendingTrivia) PendingKind() string        { return "trivia" }
func (PendingCampPower) PendingKind() string     { return "campPower" }
func (PendingMinistryPower) PendingKind() string { return "ministryPower" }
func (PendingMediaRevote) PendingKind() string   { return "mediaRevote" }
func (PendingBribe) PendingKind() string         { return "bribe" }
func (PendingDisappear) PendingKind() string     { return "disappear" }
func (PendingSpeech) PendingKind() string        { return "speech" }

// setPending installs a pending action if the slot is free.
func (g *Game) setPending(pa PendingAction) bool {
	if g.Pending != nil {
		return false
	}
	g.Pending = pa
	return true
}

// clearPending empties the slot.
func (g *Game) clearPending() { g.Pending = nil }
