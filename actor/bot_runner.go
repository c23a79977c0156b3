package actor

import (
	"math/rand"
	"time"

	"github.com/weedbox/timebank"

	"github.com/weedbox/shanghai"
)

type ActionProbability struct {
	Action string
	Weight float64
}

var (
	drawProbabilities = []ActionProbability{
		{Action: "draw", Weight: 0.8},
		{Action: "draw_discard", Weight: 0.2},
	}
)

// BotRunner drives one player of a table engine with weighted-random but
// always legal actions. It reacts to broadcast snapshots, so it can stand in
// for a remote client in tests and simulations.
type BotRunner struct {
	engine      shanghai.TableEngine
	playerID    string
	auto        bool
	isHumanized bool
	timebank    *timebank.TimeBank
	rnd         *rand.Rand
}

func NewBotRunner(engine shanghai.TableEngine, playerID string) *BotRunner {
	return &BotRunner{
		engine:   engine,
		playerID: playerID,
		timebank: timebank.NewTimeBank(),
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (br *BotRunner) PlayerID() string {
	return br.playerID
}

// Humanized adds think-time before every scheduled action.
func (br *BotRunner) Humanized(enabled bool) {
	br.isHumanized = enabled
}

func (br *BotRunner) SetRand(r *rand.Rand) {
	br.rnd = r
}

// Start enables reacting to snapshots; Stop cancels any scheduled action.
func (br *BotRunner) Start() {
	br.auto = true
}

func (br *BotRunner) Stop() {
	br.auto = false
	br.timebank.Cancel()
}

// UpdateSnapshot consumes one broadcast snapshot. In auto mode an action is
// scheduled off the broadcasting goroutine; the engine silently ignores
// anything that went stale in between.
func (br *BotRunner) UpdateSnapshot(snapshot *shanghai.PlayerSnapshot) error {
	if !br.auto || snapshot.CurrentTurn != br.playerID {
		return nil
	}

	delay := time.Millisecond
	if br.isHumanized {
		delay = time.Duration(100+br.rnd.Intn(200)) * time.Millisecond
	}

	br.timebank.Cancel()
	return br.timebank.NewTask(delay, func(isCancelled bool) {
		if isCancelled {
			return
		}
		br.Act(snapshot)
	})
}

// Act performs exactly one action for the given snapshot, synchronously.
func (br *BotRunner) Act(snapshot *shanghai.PlayerSnapshot) {
	if snapshot.CurrentTurn != br.playerID {
		return
	}

	switch {
	case snapshot.PendingBuy && snapshot.TurnPhase == shanghai.TurnPhase_AwaitingDraw:
		br.engine.ResolveBuyRequest(br.playerID, br.rnd.Float64() < 0.5)
	case snapshot.TurnPhase == shanghai.TurnPhase_AwaitingDraw:
		if br.pickDrawAction() == "draw_discard" && snapshot.DiscardTop != nil {
			br.engine.DrawFromDiscard(br.playerID)
		} else {
			br.engine.DrawCard(br.playerID)
		}
	case snapshot.TurnPhase == shanghai.TurnPhase_Playing:
		if len(snapshot.Hand) > 0 {
			br.engine.DiscardCard(br.playerID, br.rnd.Intn(len(snapshot.Hand)))
		}
	}
}

func (br *BotRunner) pickDrawAction() string {
	total := 0.0
	for _, p := range drawProbabilities {
		total += p.Weight
	}
	pick := br.rnd.Float64() * total
	for _, p := range drawProbabilities {
		pick -= p.Weight
		if pick <= 0 {
			return p.Action
		}
	}
	return drawProbabilities[0].Action
}
