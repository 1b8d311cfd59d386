package packet

import (
	"encoding/json"

	"github.com/turfwar/server/internal/world"
)

// The encoders below produce ready-to-send text frames. Encoding a value
// built only from plain fields cannot fail; errors are still surfaced for
// snapshots since they carry caller data.

func Welcome(session uint64, role string) []byte {
	return mustMarshal(WelcomeMsg{Type: TypeWelcome, Session: session, Role: role})
}

func Snapshot(s world.Snapshot) ([]byte, error) {
	return json.Marshal(SnapshotMsg{Type: TypeSnapshot, Snapshot: s})
}

func Ended(tick uint64) []byte {
	return mustMarshal(EndedMsg{Type: TypeEnded, Tick: tick})
}

func Error(message string) []byte {
	return mustMarshal(ErrorMsg{Type: TypeError, Message: message})
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
