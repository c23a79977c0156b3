package shanghai

type TableSetting struct {
	TableID      string       `json:"table_id"`
	TournamentID string       `json:"tournament_id"`
	Round        int          `json:"round"`
	DealerIndex  int          `json:"dealer_index"` // UnsetValue picks a fresh random dealer
	JoinPlayers  []JoinPlayer `json:"join_players"`
}

type JoinPlayer struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Score      int    `json:"score"` // carried-over cumulative score
}
