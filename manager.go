package shanghai

import (
	"errors"
	"sync"
)

var (
	ErrManagerTableNotFound = errors.New("manager: table not found")
)

// Manager is the owning registry of table engines, keyed by table ID. It is
// created by the embedder and torn down explicitly via CloseTable / Reset.
type Manager interface {
	Reset()

	// TableEngine Actions
	GetTableEngine(tableID string) (TableEngine, error)
	CreateTable(options *TableEngineOptions, callbacks *TableEngineCallbacks, setting TableSetting) (*Table, error)
	StartRound(tableID string) error
	CloseTable(tableID string) error

	// Player Actions
	DrawCard(tableID, playerID string) error
	DrawFromDiscard(tableID, playerID string) error
	RequestBuy(tableID, playerID string) error
	ResolveBuyRequest(tableID, playerID string, allowed bool) error
	DiscardCard(tableID, playerID string, handIndex int) error
	Meld(tableID, playerID string, groups [][]int) error
	ReorderHand(tableID, playerID string, newHand []Card) error
}

type manager struct {
	tableEngines sync.Map
}

func NewManager() Manager {
	return &manager{
		tableEngines: sync.Map{},
	}
}

func (m *manager) Reset() {
	m.tableEngines = sync.Map{}
}

func (m *manager) GetTableEngine(tableID string) (TableEngine, error) {
	tableEngine, exist := m.tableEngines.Load(tableID)
	if !exist {
		return nil, ErrManagerTableNotFound
	}
	return tableEngine.(TableEngine), nil
}

func (m *manager) CreateTable(options *TableEngineOptions, callbacks *TableEngineCallbacks, setting TableSetting) (*Table, error) {
	var engineOptions *TableEngineOptions
	if options != nil {
		engineOptions = options
	} else {
		engineOptions = NewTableEngineOptions()
	}

	var engineCallbacks *TableEngineCallbacks
	if callbacks != nil {
		engineCallbacks = callbacks
	} else {
		engineCallbacks = NewTableEngineCallbacks()
	}

	tableEngine := NewTableEngine(engineOptions)
	tableEngine.OnTableUpdated(engineCallbacks.OnTableUpdated)
	tableEngine.OnSnapshotUpdated(engineCallbacks.OnSnapshotUpdated)
	tableEngine.OnBuyRequested(engineCallbacks.OnBuyRequested)
	tableEngine.OnAnimationEvent(engineCallbacks.OnAnimationEvent)
	tableEngine.OnMeldRejected(engineCallbacks.OnMeldRejected)
	tableEngine.OnRoundEnded(engineCallbacks.OnRoundEnded)
	table, err := tableEngine.CreateTable(setting)
	if err != nil {
		return nil, err
	}

	m.tableEngines.Store(table.ID, tableEngine)
	return table, nil
}

func (m *manager) StartRound(tableID string) error {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return ErrManagerTableNotFound
	}

	return tableEngine.StartRound()
}

func (m *manager) CloseTable(tableID string) error {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return ErrManagerTableNotFound
	}

	if err := tableEngine.CloseTable(); err != nil {
		return err
	}

	m.tableEngines.Delete(tableID)
	return nil
}

func (m *manager) DrawCard(tableID, playerID string) error {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return ErrManagerTableNotFound
	}

	return tableEngine.DrawCard(playerID)
}

func (m *manager) DrawFromDiscard(tableID, playerID string) error {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return ErrManagerTableNotFound
	}

	return tableEngine.DrawFromDiscard(playerID)
}

func (m *manager) RequestBuy(tableID, playerID string) error {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return ErrManagerTableNotFound
	}

	return tableEngine.RequestBuy(playerID)
}

func (m *manager) ResolveBuyRequest(tableID, playerID string, allowed bool) error {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return ErrManagerTableNotFound
	}

	return tableEngine.ResolveBuyRequest(playerID, allowed)
}

func (m *manager) DiscardCard(tableID, playerID string, handIndex int) error {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return ErrManagerTableNotFound
	}

	return tableEngine.DiscardCard(playerID, handIndex)
}

func (m *manager) Meld(tableID, playerID string, groups [][]int) error {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return ErrManagerTableNotFound
	}

	return tableEngine.Meld(playerID, groups)
}

func (m *manager) ReorderHand(tableID, playerID string, newHand []Card) error {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return ErrManagerTableNotFound
	}

	return tableEngine.ReorderHand(playerID, newHand)
}
