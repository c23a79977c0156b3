package shanghai

import "go.uber.org/zap"

func (te *tableEngine) emitEvent(eventName string, playerID string) {
	// refresh table
	te.table.RefreshUpdateAt()

	// emit event
	te.options.Logger.Debug("emit event",
		zap.String("table_id", te.table.ID),
		zap.Int64("serial", te.table.UpdateSerial),
		zap.String("player_id", playerID),
		zap.String("event", eventName),
	)
	te.onTableUpdated(te.table)
}

// broadcastState sends a personalized snapshot to every participant. It must
// run only after the triggering mutation has fully committed.
func (te *tableEngine) broadcastState() {
	for _, player := range te.table.State.PlayerStates {
		te.onSnapshotUpdated(player.PlayerID, te.table.PlayerSnapshot(player.PlayerID))
	}
}

func (te *tableEngine) emitAnimationEvent(eventType, playerID string, card *Card) {
	te.onAnimationEvent(&AnimationEvent{
		Type:     eventType,
		PlayerID: playerID,
		Card:     card,
	})
}
