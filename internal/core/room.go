package core

import (
	"math"
	"slices"
	"time"

	"github.com/dkeye/imposter/internal/content"
	"github.com/dkeye/imposter/internal/domain"
	"github.com/rs/zerolog/log"
)

// MinPlayers is the smallest room a round can start or keep running with.
const MinPlayers = 3

// Deps are the collaborators a room draws on. Zero fields get defaults in NewRoom.
type Deps struct {
	Bank            content.Bank
	Rand            Rand
	Now             Clock
	DefaultCategory string
}

// WithDefaults fills zero fields and resolves DefaultCategory against the bank.
func (d Deps) WithDefaults() Deps {
	if d.Bank == nil {
		d.Bank = content.Default()
	}
	if d.Rand == nil {
		d.Rand = DefaultRand()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if _, ok := d.Bank.Words(d.DefaultCategory); !ok {
		if cats := d.Bank.Categories(); len(cats) > 0 {
			d.DefaultCategory = cats[0]
		}
	}
	return d
}

type NoticeKind string

const (
	NoticeRole   NoticeKind = "role"
	NoticeKicked NoticeKind = "kicked"
)

// Notice is a payload for a single player. It never appears in the room view.
type Notice struct {
	To   domain.PlayerID
	Kind NoticeKind
	Role *RoleReveal
}

// Room is the authoritative state of one game.
//
// Room is not safe for concurrent use; the owner serializes every call.
// Mutating methods either apply a complete transition and return nil, or
// return an error and leave the room untouched.
type Room struct {
	code      domain.RoomCode
	hostID    domain.PlayerID
	phase     domain.Phase
	category  string
	settings  domain.Settings
	word      string
	imposters []domain.PlayerID
	players   []*domain.Player
	turnOrder []domain.PlayerID
	chat      []domain.ChatMessage
	slow      *slowMode
	joinSeq   uint64
	deps      Deps
}

// NewRoom builds a lobby with the creator as its only player and host.
func NewRoom(code domain.RoomCode, hostID domain.PlayerID, hostName string, deps Deps) *Room {
	deps = deps.WithDefaults()
	r := &Room{
		code:     code,
		hostID:   hostID,
		phase:    domain.PhaseLobby,
		category: deps.DefaultCategory,
		settings: domain.DefaultSettings(),
		slow:     newSlowMode(ChatCooldown),
		deps:     deps,
	}
	r.addPlayer(hostID, hostName)
	return r
}

func (r *Room) Code() domain.RoomCode     { return r.code }
func (r *Room) Host() domain.PlayerID     { return r.hostID }
func (r *Room) Phase() domain.Phase       { return r.phase }
func (r *Room) Category() string          { return r.category }
func (r *Room) Settings() domain.Settings { return r.settings }
func (r *Room) Word() string              { return r.word }
func (r *Room) PlayerCount() int          { return len(r.players) }
func (r *Room) IsEmpty() bool             { return len(r.players) == 0 }

func (r *Room) HasPlayer(id domain.PlayerID) bool {
	return r.player(id) != nil
}

func (r *Room) Imposters() []domain.PlayerID { return slices.Clone(r.imposters) }
func (r *Room) TurnOrder() []domain.PlayerID { return slices.Clone(r.turnOrder) }
func (r *Room) Chat() []domain.ChatMessage   { return slices.Clone(r.chat) }

// PlayerIDs lists members in join order.
func (r *Room) PlayerIDs() []domain.PlayerID {
	out := make([]domain.PlayerID, len(r.players))
	for i, p := range r.players {
		out[i] = p.ID
	}
	return out
}

// Player returns a copy of a member's state.
func (r *Room) Player(id domain.PlayerID) (domain.Player, bool) {
	if p := r.player(id); p != nil {
		return *p, true
	}
	return domain.Player{}, false
}

func (r *Room) IsImposter(id domain.PlayerID) bool {
	return slices.Contains(r.imposters, id)
}

// Join adds a player while the room is still in the lobby.
func (r *Room) Join(id domain.PlayerID, name string) error {
	if r.phase != domain.PhaseLobby {
		return ErrGameStarted
	}
	if p := r.player(id); p != nil {
		p.Name = domain.CleanName(name)
		return nil
	}
	r.addPlayer(id, name)
	return nil
}

// Remove drops a player in any phase. It reports whether the player was a member.
func (r *Room) Remove(id domain.PlayerID) bool {
	idx := slices.IndexFunc(r.players, func(p *domain.Player) bool { return p.ID == id })
	if idx < 0 {
		return false
	}
	r.players = slices.Delete(r.players, idx, idx+1)
	r.slow.forget(id)
	if len(r.players) == 0 {
		return true
	}

	if r.hostID == id {
		r.hostID = r.earliestJoiner()
		log.Debug().Str("module", "core.room").Str("room", string(r.code)).Str("host", string(r.hostID)).Msg("host migrated")
	}
	r.turnOrder = slices.DeleteFunc(r.turnOrder, func(p domain.PlayerID) bool { return p == id })
	for _, p := range r.players {
		if p.Vote == id {
			p.Vote = ""
		}
	}

	if r.phase.InProgress() && r.phase != domain.PhaseResults && len(r.players) < MinPlayers {
		r.phase = domain.PhaseResults
		return true
	}
	r.settle()
	return true
}

// Kick removes target on the host's behalf and notifies the target privately.
func (r *Room) Kick(caller, target domain.PlayerID) ([]Notice, error) {
	if caller != r.hostID {
		return nil, ErrNotHost
	}
	if !r.HasPlayer(target) {
		return nil, ErrNotMember
	}
	r.Remove(target)
	return []Notice{{To: target, Kind: NoticeKicked}}, nil
}

// UpdateSettings applies a host's lobby settings change. Invalid fields are ignored one by one.
func (r *Room) UpdateSettings(caller domain.PlayerID, upd domain.SettingsUpdate) error {
	if caller != r.hostID {
		return ErrNotHost
	}
	if r.phase != domain.PhaseLobby {
		return ErrInvalidPhase
	}
	if upd.Category != "" {
		if _, ok := r.deps.Bank.Words(upd.Category); ok {
			r.category = upd.Category
		}
	}
	if n, ok := finiteFloor(upd.ImposterCount); ok {
		r.settings.ImposterCount = clamp(n, 1, maxImposters(len(r.players)))
	}
	if upd.ShowCategoryToImposter != nil {
		r.settings.ShowCategoryToImposter = *upd.ShowCategoryToImposter
	}
	if upd.ShowHintToImposter != nil {
		r.settings.ShowHintToImposter = *upd.ShowHintToImposter
	}
	return nil
}

// StartGame deals a word and secret roles and moves the room to reveal.
// The returned notices carry each player's private role.
func (r *Room) StartGame(caller domain.PlayerID) ([]Notice, error) {
	if caller != r.hostID {
		return nil, ErrNotHost
	}
	if r.phase != domain.PhaseLobby {
		return nil, ErrInvalidPhase
	}
	n := len(r.players)
	if n < MinPlayers {
		return nil, ErrNotEnoughPlayers
	}
	words, ok := r.deps.Bank.Words(r.category)
	if !ok || len(words) == 0 {
		if words, ok = r.deps.Bank.Words(r.deps.DefaultCategory); !ok || len(words) == 0 {
			return nil, ErrValidation
		}
	}

	r.word = pick(r.deps.Rand, words)
	count := clamp(r.settings.ImposterCount, 1, maxImposters(n))
	r.imposters = shuffle(r.deps.Rand, r.PlayerIDs())[:count]

	for _, p := range r.players {
		p.Ready = false
		p.Vote = ""
	}
	r.turnOrder = nil
	r.chat = nil
	r.slow.reset()

	notices := make([]Notice, 0, n)
	for _, p := range r.players {
		notices = append(notices, Notice{To: p.ID, Kind: NoticeRole, Role: r.roleFor(p.ID)})
	}
	r.phase = domain.PhaseReveal
	return notices, nil
}

// Ready marks the caller as having seen their role. Repeating it is a no-op.
func (r *Room) Ready(caller domain.PlayerID) error {
	p := r.player(caller)
	if p == nil {
		return ErrNotMember
	}
	if r.phase != domain.PhaseReveal {
		return ErrInvalidPhase
	}
	p.Ready = true
	r.settle()
	return nil
}

func (r *Room) StartVoting(caller domain.PlayerID) error {
	if caller != r.hostID {
		return ErrNotHost
	}
	if r.phase != domain.PhaseSteps {
		return ErrInvalidPhase
	}
	for _, p := range r.players {
		p.Vote = ""
	}
	r.phase = domain.PhaseVote
	return nil
}

// Vote records the caller's suspect, replacing any earlier vote. Voting for
// yourself is allowed.
func (r *Room) Vote(caller, target domain.PlayerID) error {
	p := r.player(caller)
	if p == nil {
		return ErrNotMember
	}
	if r.phase != domain.PhaseVote {
		return ErrInvalidPhase
	}
	if target == "" || !r.HasPlayer(target) {
		return ErrValidation
	}
	p.Vote = target
	r.settle()
	return nil
}

// EndGame forces any running round straight to results.
func (r *Room) EndGame(caller domain.PlayerID) error {
	if caller != r.hostID {
		return ErrNotHost
	}
	if r.phase == domain.PhaseLobby {
		return ErrInvalidPhase
	}
	r.phase = domain.PhaseResults
	return nil
}

// ResetLobby returns the room to the lobby keeping category and settings.
func (r *Room) ResetLobby(caller domain.PlayerID) error {
	if caller != r.hostID {
		return ErrNotHost
	}
	r.phase = domain.PhaseLobby
	r.word = ""
	r.imposters = nil
	r.turnOrder = nil
	r.chat = nil
	r.slow.reset()
	for _, p := range r.players {
		p.Ready = false
		p.Vote = ""
	}
	return nil
}

// settle applies the implicit transitions of reveal and vote.
func (r *Room) settle() {
	switch r.phase {
	case domain.PhaseReveal:
		if r.all(func(p *domain.Player) bool { return p.Ready }) {
			r.turnOrder = shuffle(r.deps.Rand, r.PlayerIDs())
			r.phase = domain.PhaseSteps
		}
	case domain.PhaseVote:
		if r.all(func(p *domain.Player) bool { return p.Vote != "" }) {
			r.phase = domain.PhaseResults
		}
	}
}

func (r *Room) roleFor(id domain.PlayerID) *RoleReveal {
	if !r.IsImposter(id) {
		word := r.word
		return &RoleReveal{
			Word:         &word,
			Category:     r.category,
			ShowCategory: true,
		}
	}
	hint := pick(r.deps.Rand, r.deps.Bank.Hints(r.word, r.category))
	return &RoleReveal{
		IsImposter:   true,
		Category:     r.category,
		ShowCategory: r.settings.ShowCategoryToImposter,
		ShowHint:     r.settings.ShowHintToImposter,
		Hint:         &hint,
	}
}

func (r *Room) addPlayer(id domain.PlayerID, name string) {
	r.joinSeq++
	r.players = append(r.players, domain.NewPlayer(id, name, r.deps.Now(), r.joinSeq))
}

func (r *Room) player(id domain.PlayerID) *domain.Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) earliestJoiner() domain.PlayerID {
	best := r.players[0]
	for _, p := range r.players[1:] {
		if p.JoinedBefore(best) {
			best = p
		}
	}
	return best.ID
}

func (r *Room) all(pred func(*domain.Player) bool) bool {
	for _, p := range r.players {
		if !pred(p) {
			return false
		}
	}
	return len(r.players) > 0
}

// maxImposters is floor(n/2), but never below one.
func maxImposters(n int) int {
	return max(1, n/2)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// finiteFloor rejects missing, NaN and infinite counts and floors the rest.
func finiteFloor(v *float64) (int, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, false
	}
	f := math.Floor(*v)
	f = math.Max(math.Min(f, math.MaxInt32), math.MinInt32)
	return int(f), true
}
