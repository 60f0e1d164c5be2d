package roomsync

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/kshitijx07/gemaverse-v2/internal/rooms"

	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS chat_rooms (
    id           TEXT        PRIMARY KEY,
    name         TEXT        NOT NULL,
    max_members  INTEGER     NOT NULL,
    created_by   TEXT        NOT NULL,
    member_count INTEGER     NOT NULL DEFAULT 0,
    members      JSONB       NOT NULL DEFAULT '[]',
    created_at   TIMESTAMPTZ NOT NULL,
    synced_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const upsert = `
INSERT INTO chat_rooms (id, name, max_members, created_by,
                        member_count, members, created_at, synced_at)
     VALUES ($1,$2,$3,$4,$5,$6,$7,now())
ON CONFLICT (id) DO UPDATE
       SET member_count=EXCLUDED.member_count,
           members=EXCLUDED.members,
           synced_at=EXCLUDED.synced_at`

// Source lists the rooms to mirror.
type Source interface {
	ListRooms(ctx context.Context) []rooms.Summary
}

// EnsureSchema creates the snapshot table when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Run mirrors every room into Postgres each interval. Rooms live in memory;
// the table is a read-only view for the CRUD side of the platform.
func Run(ctx context.Context, src Source, db *sql.DB, interval time.Duration) {
	tk := time.NewTicker(interval)
	go func() {
		defer tk.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tk.C:
				if err := SyncOnce(ctx, src, db); err != nil {
					zap.L().Error("roomsync.sync", zap.Error(err))
				}
			}
		}
	}()
}

// SyncOnce upserts the current room list in a single transaction.
func SyncOnce(ctx context.Context, src Source, db *sql.DB) error {
	list := src.ListRooms(ctx)
	if len(list) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range list {
		members, err := json.Marshal(r.Members)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, upsert,
			r.ID, r.Name, r.MaxMembers, r.CreatedBy,
			r.CurrentMembers, string(members), r.CreatedAt); err != nil {
			zap.L().Error("roomsync.upsert", zap.String("id", r.ID), zap.Error(err))
			return err
		}
	}
	return tx.Commit()
}
