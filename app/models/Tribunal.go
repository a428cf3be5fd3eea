package models

// TribunalPhase is the lifecycle stage of the active tribunal.
type TribunalPhase string

const (
	PhaseAccusation TribunalPhase = "accusation"
	PhaseEvidence   TribunalPhase = "evidence"
	PhaseVerdict    TribunalPhase = "verdict"
)

// Verdict is one of the four tribunal outcomes.
type Verdict string

const (
	VerdictGuilty               Verdict = "guilty"
	VerdictInnocent             Verdict = "innocent"
	VerdictBothGuilty           Verdict = "bothGuilty"
	VerdictInsufficientEvidence Verdict = "insufficientEvidence"
)

// Tribunal is the single active accusation. At most one exists at a
// time; it is cleared once a verdict is rendered.
type Tribunal struct {
	AccuserId string        `json:"accuser_id"`
	AccusedId string        `json:"accused_id"`
	Crime     string        `json:"crime"`
	Phase     TribunalPhase `json:"phase"`

	WitnessesFor     []string `json:"witnesses_for"`
	WitnessesAgainst []string `json:"witnesses_against"`

	// FromGulag marks an accusation filed from inside the Gulag
	// ("informing"): a guilty verdict releases the informer, an
	// innocent verdict extends their sentence.
	FromGulag bool `json:"from_gulag"`
}
