package actor

import "github.com/weedbox/shanghai"

// Group fans one engine's per-player snapshot broadcasts out to the bot
// playing that seat.
type Group struct {
	runners map[string]*BotRunner
}

func NewGroup() *Group {
	return &Group{
		runners: make(map[string]*BotRunner),
	}
}

func (g *Group) Add(runner *BotRunner) {
	g.runners[runner.PlayerID()] = runner
}

func (g *Group) Runner(playerID string) *BotRunner {
	return g.runners[playerID]
}

// Bind routes the engine's snapshot broadcasts into the group.
func (g *Group) Bind(engine shanghai.TableEngine) {
	engine.OnSnapshotUpdated(func(playerID string, snapshot *shanghai.PlayerSnapshot) {
		if runner, ok := g.runners[playerID]; ok {
			_ = runner.UpdateSnapshot(snapshot)
		}
	})
}

func (g *Group) StartAll() {
	for _, runner := range g.runners {
		runner.Start()
	}
}

func (g *Group) StopAll() {
	for _, runner := range g.runners {
		runner.Stop()
	}
}
