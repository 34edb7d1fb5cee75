package history

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
)

const MessagesCollection = "messages"

type messageDoc struct {
	Text   string `firestore:"text"`
	Sender string `firestore:"sender"`
	UserID string `firestore:"userId"`
	// Zero timestamps are filled in by the server.
	Timestamp time.Time `firestore:"timestamp,serverTimestamp"`
}

func toDoc(m Message) messageDoc {
	return messageDoc{
		Text:      m.Text,
		Sender:    string(m.Sender),
		UserID:    m.UserID,
		Timestamp: m.Timestamp,
	}
}

type FirestoreRecorder struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreRecorder(client *firestore.Client) *FirestoreRecorder {
	return &FirestoreRecorder{client: client, collection: MessagesCollection}
}

func (r *FirestoreRecorder) Record(ctx context.Context, msg Message) error {
	if _, err := r.client.Collection(r.collection).Doc(msg.ID).Set(ctx, toDoc(msg)); err != nil {
		return fmt.Errorf("write %s/%s: %w", r.collection, msg.ID, err)
	}
	return nil
}
