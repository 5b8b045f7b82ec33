package display

import (
	"context"
	"log/slog"

	"github.com/tailored-agentic-units/chatroom/artifact"
	"github.com/tailored-agentic-units/chatroom/core/protocol"
	"github.com/tailored-agentic-units/chatroom/store"
)

// Exporter is a sink that keeps a Board current and writes each changed view
// to a store under store.KeyIdea or store.KeyCode.
type Exporter struct {
	board  *artifact.Board
	store  store.Store
	logger *slog.Logger
}

// NewExporter creates an Exporter. A nil store keeps the board current
// without writing anything.
func NewExporter(board *artifact.Board, s store.Store, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{board: board, store: s, logger: logger}
}

// Clear removes previously exported views so the store starts out matching
// an empty board.
func (e *Exporter) Clear(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	return e.store.Delete(ctx, store.KeyIdea, store.KeyCode)
}

// Board returns the views maintained by the exporter.
func (e *Exporter) Board() *artifact.Board {
	return e.board
}

func (e *Exporter) OnMessage(msg protocol.Message) {
	kind, changed := e.board.Apply(msg)
	if !changed || e.store == nil {
		return
	}

	key := store.KeyIdea
	if kind == artifact.KindCode {
		key = store.KeyCode
	}

	if err := store.SaveText(context.Background(), e.store, key, e.board.Get(kind)); err != nil {
		e.logger.Error("artifact export failed", "key", key, "error", err)
		return
	}
	e.logger.Debug("artifact exported", "key", key, "sender", msg.Sender)
}
