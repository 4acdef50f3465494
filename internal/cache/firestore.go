package cache

import (
	"context"
	"fmt"
	"time"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// firestoreCollection holds cache documents, one per key.
const firestoreCollection = "prediction-cache"

type firestoreEntry struct {
	Value   []byte    `firestore:"value"`
	Expires time.Time `firestore:"expires"`
}

// Firestore is a Store over a firestore collection. Expiry is enforced on
// read; a TTL policy on the expires field keeps the collection tidy.
type Firestore struct {
	client *fs.Client
}

// NewFirestore wraps an existing client.
func NewFirestore(client *fs.Client) *Firestore {
	return &Firestore{client: client}
}

func (f *Firestore) Get(ctx context.Context, key string) ([]byte, error) {
	snap, err := f.client.Collection(firestoreCollection).Doc(key).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("firestore get %s: %w", key, err)
	}
	var e firestoreEntry
	if err := snap.DataTo(&e); err != nil {
		return nil, fmt.Errorf("firestore get %s: %w", key, err)
	}
	if !e.Expires.IsZero() && !time.Now().Before(e.Expires) {
		return nil, ErrMiss
	}
	return e.Value, nil
}

func (f *Firestore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var expires time.Time
	if ttl > 0 {
		expires = time.Now().Add(ttl)
	}
	_, err := f.client.Collection(firestoreCollection).Doc(key).Set(ctx, firestoreEntry{Value: value, Expires: expires})
	if err != nil {
		return fmt.Errorf("firestore set %s: %w", key, err)
	}
	return nil
}

func (f *Firestore) Delete(ctx context.Context, key string) error {
	if _, err := f.client.Collection(firestoreCollection).Doc(key).Delete(ctx); err != nil {
		return fmt.Errorf("firestore delete %s: %w", key, err)
	}
	return nil
}
