package tournament

const (
	// General
	UnsetValue = -1

	// Table composition bounds
	MinTableSize = 5
	MaxTableSize = 12
	MinPoolSize  = 5

	// Pairing minimizer trial budget
	DefaultPairingTrials = 50

	// Pool capacity
	DefaultMaxPlayers = 24
)

type RoomStatus string

const (
	RoomStatus_Lobby              RoomStatus = "lobby"               // 等待開賽
	RoomStatus_RoundActive        RoomStatus = "round_active"        // 本輪全桌開打中
	RoomStatus_IntermissionLocal  RoomStatus = "intermission_local"  // 單桌結束, 等其他桌
	RoomStatus_IntermissionGlobal RoomStatus = "intermission_global" // 全桌結束
	RoomStatus_Ended              RoomStatus = "ended"               // 賽事結束
)

type RandomizerType string

const (
	RandomizerType_Normal     RandomizerType = "normal"
	RandomizerType_RoundRobin RandomizerType = "round_robin"
)
