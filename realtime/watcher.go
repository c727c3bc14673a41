package realtime

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Lister re-reads the full collection (newest first) after a change.
type Lister func(ctx context.Context) (interface{}, error)

// Watcher tails change streams and turns every event into a full-collection
// broadcast. Each collection is watched independently; there is no
// cross-collection ordering. A failed stream is logged and reopened, and
// clients keep whatever snapshot they last saw in between.
type Watcher struct {
	db     *mongo.Database
	hub    *Hub
	logger *zap.Logger
}

func NewWatcher(db *mongo.Database, hub *Hub, logger *zap.Logger) *Watcher {
	return &Watcher{db: db, hub: hub, logger: logger}
}

// Watch runs until ctx is cancelled. Call it in its own goroutine per
// collection.
func (w *Watcher) Watch(ctx context.Context, collection string, list Lister) {
	for ctx.Err() == nil {
		stream, err := w.db.Collection(collection).Watch(ctx, mongo.Pipeline{})
		if err != nil {
			w.logger.Warn("failed to open change stream, retrying",
				zap.String("collection", collection), zap.Error(err))
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				return
			}
			continue
		}

		// Push the current state so new watchers start from a snapshot.
		w.broadcast(ctx, collection, list)

		for stream.Next(ctx) {
			w.broadcast(ctx, collection, list)
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			w.logger.Warn("change stream ended, reopening",
				zap.String("collection", collection), zap.Error(err))
		}
		stream.Close(context.Background())
	}
}

func (w *Watcher) broadcast(ctx context.Context, collection string, list Lister) {
	listCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	data, err := list(listCtx)
	if err != nil {
		// Stale data stays in place on the clients; nothing is cleared.
		w.logger.Warn("failed to list collection for broadcast",
			zap.String("collection", collection), zap.Error(err))
		return
	}
	w.hub.Broadcast(collection, data)
}
