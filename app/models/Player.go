package models

// Rank is a step on the Party seniority ladder. Ranks gate certain
// property groups, purchase discounts and accusation immunity.
type Rank string

const (
	Proletariat Rank = "proletariat"
	PartyMember Rank = "partyMember"
	Commissar   Rank = "commissar"
	InnerCircle Rank = "innerCircle"
)

var rankLadder = []Rank{Proletariat, PartyMember, Commissar, InnerCircle}

// RankIndex returns the position of r on the ladder, -1 if unknown.
func RankIndex(r Rank) int {
	for i, v := range rankLadder {
		if v == r {
			return i
		}
	}
	return -1
}

// Promote moves one step up the ladder, saturating at innerCircle.
func Promote(r Rank) Rank {
	idx := RankIndex(r)
	if idx < 0 {
		return r
	}
	if idx == len(rankLadder)-1 {
		return rankLadder[len(rankLadder)-1]
	}
	return rankLadder[idx+1]
}

// Demote moves one step down the ladder, saturating at proletariat.
func Demote(r Rank) Rank {
	idx := RankIndex(r)
	if idx <= 0 {
		return rankLadder[0]
	}
	return rankLadder[idx-1]
}

// Piece is one of the eight playable characters. Stalin has no piece.
type Piece string

const (
	PieceNone        Piece = ""
	PieceWorker      Piece = "worker"      // Stakhanovite Worker
	PiecePeasant     Piece = "peasant"     // Kolkhoz Peasant
	PieceApparatchik Piece = "apparatchik" // Party Apparatchik
	PieceOfficer     Piece = "officer"     // Red Army Officer
	PieceProfiteer   Piece = "profiteer"   // Black-Market Profiteer
	PieceInformant   Piece = "informant"   // NKVD Informant
	PieceGrandmaster Piece = "grandmaster" // Chess Grandmaster
	PieceBolshevik   Piece = "bolshevik"   // Old Bolshevik
)

// Capabilities tracks the one-shot and per-round ability state for a
// player. One record per player; flags are only meaningful for the
// piece (or group power) they belong to.
type Capabilities struct {
	SeizureUsed            bool `json:"seizure_used"`              // peasant property grab
	GulagImmunityUsed      bool `json:"gulag_immunity_used"`       // officer railway redirect
	RequisitionUsedThisLap bool `json:"requisition_used_this_lap"` // officer cash grab
	DisappearUsed          bool `json:"disappear_used"`            // informant
	SpeechUsed             bool `json:"speech_used"`               // old bolshevik

	CampPowerUsed           bool `json:"camp_power_used"`     // siberia group
	MinistryPowerUsed       bool `json:"ministry_power_used"` // ministries group
	MediaPowerUsedThisRound bool `json:"media_power_used_this_round"`
	PreviewUsedThisRound    bool `json:"preview_used_this_round"` // lubyanka
}

// DebtClaim is a standing claim held by a profiteer who covered another
// player's debt: the debtor owes the covered sum plus interest.
type DebtClaim struct {
	DebtorId string `json:"debtor_id"`
	Amount   int    `json:"amount"`
}

// VoucherLiability marks that VoucherId vouched this player out of the
// Gulag; if the player lands back inside before UntilRound the voucher
// is demoted.
type VoucherLiability struct {
	VoucherId  string `json:"voucher_id"`
	UntilRound int    `json:"until_round"`
}

// Player is the mutable per-player game state.
type Player struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Piece    Piece  `json:"piece"`
	Rank     Rank   `json:"rank"`
	Balance  int    `json:"balance"`
	Position int    `json:"position"`

	InGulag    bool `json:"in_gulag"`
	GulagTurns int  `json:"gulag_turns"`
	Eliminated bool `json:"eliminated"`
	IsStalin   bool `json:"is_stalin"`

	Properties   []int    `json:"properties"` // owned space ids, sorted
	FavoursOwed  []string `json:"favours_owed"`
	ReleaseToken bool     `json:"release_token"`

	UnderSuspicion         bool `json:"under_suspicion"`
	DenouncementsThisRound int  `json:"denouncements_this_round"`

	Caps      Capabilities      `json:"caps"`
	Claims    []DebtClaim       `json:"claims,omitempty"`
	Liability *VoucherLiability `json:"liability,omitempty"`
}

// Owns reports whether the player is custodian of the space id.
func (p *Player) Owns(spaceId int) bool {
	for _, id := range p.Properties {
		if id == spaceId {
			return true
		}
	}
	return false
}

// AddProperty records custodianship of a space, keeping the list sorted.
func (p *Player) AddProperty(spaceId int) {
	if p.Owns(spaceId) {
		return
	}
	pos := len(p.Properties)
	for i, id := range p.Properties {
		if id > spaceId {
			pos = i
			break
		}
	}
	p.Properties = append(p.Properties, 0)
	copy(p.Properties[pos+1:], p.Properties[pos:])
	p.Properties[pos] = spaceId
}

// RemoveProperty drops custodianship of a space.
func (p *Player) RemoveProperty(spaceId int) {
	for i, id := range p.Properties {
		if id == spaceId {
			p.Properties = append(p.Properties[:i], p.Properties[i+1:]...)
			return
		}
	}
}
