package main

import (
	"fmt"
	"math/rand"

	"github.com/pterm/pterm"

	"github.com/weedbox/shanghai"
	"github.com/weedbox/shanghai/actor"
	"github.com/weedbox/shanghai/tournament"
)

const (
	tableTurns = 30
	poolSize   = 12
	demoRounds = 3
	demoTrials = 200
	randomSeed = 20240817
	tableSeed  = 7
)

func main() {
	pterm.DefaultHeader.WithFullWidth().Println("Shanghai Rummy Simulator")

	runTableDemo()
	runPairingDemo()
}

// runTableDemo plays a handful of bot turns on a single table and prints the
// resulting state.
func runTableDemo() {
	pterm.DefaultSection.Println("Single Table")

	names := []string{"Alice", "Bob", "Carol", "Dave"}
	joinPlayers := make([]shanghai.JoinPlayer, 0, len(names))
	for _, name := range names {
		joinPlayers = append(joinPlayers, shanghai.JoinPlayer{
			PlayerID:   name,
			PlayerName: name,
		})
	}

	engine := shanghai.NewTableEngine(shanghai.NewTableEngineOptions())
	engine.OnAnimationEvent(func(event *shanghai.AnimationEvent) {
		switch event.Type {
		case shanghai.AnimationType_Draw:
			pterm.Info.Printfln("%s draws from the deck", event.PlayerID)
		case shanghai.AnimationType_DrawDiscard:
			pterm.Info.Printfln("%s takes %s from the discard pile", event.PlayerID, event.Card)
		case shanghai.AnimationType_Discard:
			pterm.Info.Printfln("%s discards %s", event.PlayerID, event.Card)
		case shanghai.AnimationType_Buy:
			pterm.Warning.Printfln("%s buys %s (plus two penalty cards)", event.PlayerID, event.Card)
		}
	})
	engine.OnBuyRequested(func(playerID string, prompt *shanghai.BuyRequestPrompt) {
		pterm.Info.Printfln("%s asks %s for permission to buy %s", prompt.RequesterName, playerID, prompt.Card)
	})

	if _, err := engine.CreateTable(shanghai.TableSetting{
		TableID:     "demo",
		Round:       1,
		DealerIndex: 0,
		JoinPlayers: joinPlayers,
	}); err != nil {
		pterm.Fatal.Println(err)
	}

	rnd := rand.New(rand.NewSource(tableSeed))
	bots := make(map[string]*actor.BotRunner, len(names))
	for i, name := range names {
		bot := actor.NewBotRunner(engine, name)
		bot.SetRand(rand.New(rand.NewSource(tableSeed + int64(i))))
		bots[name] = bot
	}

	if err := engine.StartRound(); err != nil {
		pterm.Fatal.Println(err)
	}
	table := engine.GetTable()
	pterm.Info.Printfln("round %d contract: %s", table.Meta.Round, table.State.Contract.Name)

	for turn := 0; turn < tableTurns; turn++ {
		if table.State.Status != shanghai.TableStateStatus_TableRoundActive {
			break
		}
		currentID := table.CurrentPlayer().PlayerID

		// sprinkle in buy attempts from the other seats
		if turn%5 == 4 {
			spectator := names[rnd.Intn(len(names))]
			if spectator != currentID {
				engine.RequestBuy(spectator)
			}
		}

		// one Act per phase: draw, then discard
		bots[currentID].Act(table.PlayerSnapshot(currentID))
		bots[currentID].Act(table.PlayerSnapshot(currentID))
	}

	data := pterm.TableData{{"Player", "Hand", "Buys Left", "Hand Score"}}
	for _, player := range table.State.PlayerStates {
		data = append(data, []string{
			player.PlayerName,
			fmt.Sprintf("%d cards", len(player.Hand)),
			fmt.Sprintf("%d", player.BuysRemaining),
			fmt.Sprintf("%d", player.HandScore()),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// runPairingDemo simulates a few rounds of table history and shows how much
// repeat seating the randomized-greedy assignment avoids against a plain
// shuffle.
func runPairingDemo() {
	pterm.DefaultSection.Println("Tournament Pairing")

	pool := make([]string, poolSize)
	for i := range pool {
		pool[i] = fmt.Sprintf("player_%02d", i+1)
	}
	sizes := []int{6, 6}
	rnd := rand.New(rand.NewSource(randomSeed))

	history := tournament.PairHistory{}
	data := pterm.TableData{{"Round", "Shuffle Cost", "Minimized Cost"}}

	for round := 1; round <= demoRounds; round++ {
		shuffled := append([]string(nil), pool...)
		rnd.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		shuffleCost := tournament.PairingCost(shuffled, sizes, history)

		assignment := tournament.MinimizePairings(pool, sizes, history, demoTrials, rnd)
		minimizedCost := tournament.PairingCost(assignment, sizes, history)

		data = append(data, []string{
			fmt.Sprintf("%d", round),
			fmt.Sprintf("%d", shuffleCost),
			fmt.Sprintf("%d", minimizedCost),
		})

		offset := 0
		for _, size := range sizes {
			history.Record(assignment[offset : offset+size])
			offset += size
		}
	}

	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Success.Println("lower cost means fewer repeat tablemates")
}
