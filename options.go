package shanghai

import "go.uber.org/zap"

type TableEngineCallbacks struct {
	OnTableUpdated    func(t *Table)
	OnSnapshotUpdated func(playerID string, snapshot *PlayerSnapshot)
	OnBuyRequested    func(playerID string, prompt *BuyRequestPrompt)
	OnAnimationEvent  func(event *AnimationEvent)
	OnMeldRejected    func(playerID string, reason string)
	OnRoundEnded      func(t *Table, scores []PlayerScore)
}

func NewTableEngineCallbacks() *TableEngineCallbacks {
	return &TableEngineCallbacks{
		OnTableUpdated:    func(*Table) {},
		OnSnapshotUpdated: func(string, *PlayerSnapshot) {},
		OnBuyRequested:    func(string, *BuyRequestPrompt) {},
		OnAnimationEvent:  func(*AnimationEvent) {},
		OnMeldRejected:    func(string, string) {},
		OnRoundEnded:      func(*Table, []PlayerScore) {},
	}
}

type TableEngineOptions struct {
	NumDecks     int
	HandSize     int
	BuysPerRound int
	Logger       *zap.Logger
}

func NewTableEngineOptions() *TableEngineOptions {
	return &TableEngineOptions{
		NumDecks:     DefaultNumDecks,
		HandSize:     DefaultHandSize,
		BuysPerRound: DefaultBuysPerRound,
		Logger:       zap.NewNop(),
	}
}
