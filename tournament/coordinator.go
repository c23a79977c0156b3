package tournament

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/thoas/go-funk"
	"go.uber.org/zap"

	"github.com/weedbox/shanghai"
)

var (
	ErrCoordinatorPoolFull         = errors.New("tournament: player pool is full")
	ErrCoordinatorPlayerNotFound   = errors.New("tournament: player not found")
	ErrCoordinatorDuplicatePlayer  = errors.New("tournament: player already in pool")
	ErrCoordinatorNotEnoughPlayers = errors.New("tournament: at least 5 players required")
	ErrCoordinatorInvalidTableSize = errors.New("tournament: all tables must have between 5 and 12 players")
	ErrCoordinatorSizeMismatch     = errors.New("tournament: table configuration does not match player count")
	ErrCoordinatorRoundInProgress  = errors.New("tournament: round already in progress")
	ErrCoordinatorNotIntermission  = errors.New("tournament: no intermission to advance from")
	ErrCoordinatorEnded            = errors.New("tournament: tournament has ended")
	ErrCoordinatorTableNotFound    = errors.New("tournament: table not found")
)

type PoolPlayer struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Score      int    `json:"score"` // cumulative across all rounds played
}

type Coordinator interface {
	// Events
	OnRoomStatusUpdated(fn func(status RoomStatus, round int))                  // 賽事狀態監聽器
	OnTableStatusUpdated(fn func(tableID string, status RoomStatus, round int)) // 單桌狀態監聽器
	OnTournamentEnded(fn func(scores []shanghai.PlayerScore))                   // 賽事結束監聽器

	// Player Pool
	Join(playerID, playerName string) error
	Leave(playerID string) error
	Players() []PoolPlayer

	// Rounds
	CurrentRound() int
	Status() RoomStatus
	TableIDs() []string
	GetTableEngine(tableID string) (shanghai.TableEngine, error)
	PairCount(playerA, playerB string) int
	StartRound(tableSizes []int, randomizer RandomizerType) error
	StartNextRound() error
}

type CoordinatorOptions struct {
	TournamentID  string
	MaxPlayers    int
	TotalRounds   int
	PairingTrials int
	// EngineCallbacks is applied to every table engine the coordinator
	// creates; its OnRoundEnded is chained before the coordinator's own
	// round-end bookkeeping.
	EngineCallbacks *shanghai.TableEngineCallbacks
	EngineOptions   *shanghai.TableEngineOptions
	Logger          *zap.Logger
	Rand            *rand.Rand
}

func NewCoordinatorOptions() *CoordinatorOptions {
	return &CoordinatorOptions{
		TournamentID:  uuid.New().String(),
		MaxPlayers:    DefaultMaxPlayers,
		TotalRounds:   shanghai.TotalRounds(),
		PairingTrials: DefaultPairingTrials,
		Logger:        zap.NewNop(),
	}
}

type coordinator struct {
	mu                   sync.Mutex
	options              *CoordinatorOptions
	players              []*PoolPlayer
	round                int
	status               RoomStatus
	engines              map[string]shanghai.TableEngine
	tableIDs             []string
	pairHistory          PairHistory
	finishedTables       int
	activeSizes          []int
	activeRandomizer     RandomizerType
	onRoomStatusUpdated  func(RoomStatus, int)
	onTableStatusUpdated func(string, RoomStatus, int)
	onTournamentEnded    func([]shanghai.PlayerScore)
}

func NewCoordinator(options *CoordinatorOptions) Coordinator {
	if options == nil {
		options = NewCoordinatorOptions()
	}
	return &coordinator{
		options:              options,
		players:              make([]*PoolPlayer, 0),
		status:               RoomStatus_Lobby,
		engines:              make(map[string]shanghai.TableEngine),
		pairHistory:          make(PairHistory),
		onRoomStatusUpdated:  func(RoomStatus, int) {},
		onTableStatusUpdated: func(string, RoomStatus, int) {},
		onTournamentEnded:    func([]shanghai.PlayerScore) {},
	}
}

func (c *coordinator) OnRoomStatusUpdated(fn func(RoomStatus, int)) {
	c.onRoomStatusUpdated = fn
}

func (c *coordinator) OnTableStatusUpdated(fn func(string, RoomStatus, int)) {
	c.onTableStatusUpdated = fn
}

func (c *coordinator) OnTournamentEnded(fn func([]shanghai.PlayerScore)) {
	c.onTournamentEnded = fn
}

func (c *coordinator) Join(playerID, playerName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status == RoomStatus_Ended {
		return ErrCoordinatorEnded
	}
	if len(c.players) >= c.options.MaxPlayers {
		return ErrCoordinatorPoolFull
	}
	if c.findPlayerIdx(playerID) != UnsetValue {
		return ErrCoordinatorDuplicatePlayer
	}

	c.players = append(c.players, &PoolPlayer{
		PlayerID:   playerID,
		PlayerName: playerName,
	})
	return nil
}

func (c *coordinator) Leave(playerID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.findPlayerIdx(playerID)
	if idx == UnsetValue {
		return ErrCoordinatorPlayerNotFound
	}

	c.players = append(c.players[:idx], c.players[idx+1:]...)
	return nil
}

func (c *coordinator) Players() []PoolPlayer {
	c.mu.Lock()
	defer c.mu.Unlock()

	return funk.Map(c.players, func(p *PoolPlayer) PoolPlayer {
		return *p
	}).([]PoolPlayer)
}

func (c *coordinator) CurrentRound() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.round
}

func (c *coordinator) Status() RoomStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *coordinator) TableIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]string, len(c.tableIDs))
	copy(ids, c.tableIDs)
	return ids
}

func (c *coordinator) GetTableEngine(tableID string) (shanghai.TableEngine, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	engine, exist := c.engines[tableID]
	if !exist {
		return nil, ErrCoordinatorTableNotFound
	}
	return engine, nil
}

// PairCount reports how many rounds the two players have shared a table.
func (c *coordinator) PairCount(playerA, playerB string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pairHistory[PairKey(playerA, playerB)]
}

/*
StartRound splits the pool into tables of the given sizes and starts every
table's round. Configuration errors are surfaced to the caller with no state
mutation. Round 1 always shuffles uniformly; round_robin engages the pairing
minimizer from round 2 onward.
*/
func (c *coordinator) StartRound(tableSizes []int, randomizer RandomizerType) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status == RoomStatus_RoundActive {
		return ErrCoordinatorRoundInProgress
	}
	if c.status == RoomStatus_Ended {
		return ErrCoordinatorEnded
	}

	return c.startRound(tableSizes, randomizer)
}

/*
StartNextRound advances the round counter once every table has finished.
Past the final round it ends the tournament and reports cumulative scores
instead of starting a new round; otherwise the previously chosen table-size
configuration is reused.
*/
func (c *coordinator) StartNextRound() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status == RoomStatus_Ended {
		return ErrCoordinatorEnded
	}
	if c.status != RoomStatus_IntermissionGlobal {
		return ErrCoordinatorNotIntermission
	}

	if c.round+1 > c.options.TotalRounds {
		c.status = RoomStatus_Ended
		scores := c.cumulativeScores()
		c.onRoomStatusUpdated(RoomStatus_Ended, c.round)
		c.onTournamentEnded(scores)
		return nil
	}

	c.round++
	return c.startRound(c.activeSizes, c.activeRandomizer)
}
