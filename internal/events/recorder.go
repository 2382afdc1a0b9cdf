package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/abhisek/studybuddy/internal/store"
)

// RecordResults returns a handler that saves ResultRecorded events. Saving
// the same session twice is a no-op in the repository.
func RecordResults(repo store.ResultRepo) HandlerFunc {
	return func(ctx context.Context, msg *message.Message) error {
		var ev ResultRecorded
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			return fmt.Errorf("decode result event: %w", err)
		}
		return repo.Save(ctx, store.Result{
			SessionID: ev.SessionID,
			Timestamp: ev.Timestamp,
			Summary:   ev.Summary,
		})
	}
}
