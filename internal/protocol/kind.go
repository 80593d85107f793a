package protocol

// Kind enumerates every message type of the line protocol.
type Kind int

const (
	KindUnknown Kind = iota
	LoginReq
	LoginRes
	RoomListReq
	RoomListRes
	RoomCreateReq
	RoomCreateRes
	RoomJoinReq
	RoomJoinRes
	RoomUpdate
	RoomLeaveReq
	GameReady
	GameStartReq
	GameStart
	WordInput
	GameUpdate
	GameEnd
	ChatMsg
	Error
	kindCount
)

var kindNames = [kindCount]string{
	KindUnknown:   "UNKNOWN",
	LoginReq:      "LOGIN_REQ",
	LoginRes:      "LOGIN_RES",
	RoomListReq:   "ROOM_LIST_REQ",
	RoomListRes:   "ROOM_LIST_RES",
	RoomCreateReq: "ROOM_CREATE_REQ",
	RoomCreateRes: "ROOM_CREATE_RES",
	RoomJoinReq:   "ROOM_JOIN_REQ",
	RoomJoinRes:   "ROOM_JOIN_RES",
	RoomUpdate:    "ROOM_UPDATE",
	RoomLeaveReq:  "ROOM_LEAVE_REQ",
	GameReady:     "GAME_READY",
	GameStartReq:  "GAME_START_REQ",
	GameStart:     "GAME_START",
	WordInput:     "WORD_INPUT",
	GameUpdate:    "GAME_UPDATE",
	GameEnd:       "GAME_END",
	ChatMsg:       "CHAT_MSG",
	Error:         "ERROR",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, kindCount)
	for k := KindUnknown + 1; k < kindCount; k++ {
		m[kindNames[k]] = k
	}
	return m
}()

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// ParseKind returns the Kind named by s, or KindUnknown.
func ParseKind(s string) Kind {
	return kindsByName[s]
}

// InboundKinds lists the kinds a client is allowed to send.
func InboundKinds() []Kind {
	return []Kind{
		LoginReq,
		RoomListReq,
		RoomCreateReq,
		RoomJoinReq,
		RoomLeaveReq,
		GameReady,
		GameStartReq,
		WordInput,
		ChatMsg,
	}
}
