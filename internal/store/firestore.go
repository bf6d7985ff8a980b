package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore implements Store on top of a Cloud Firestore database
type Firestore struct {
	client *firestore.Client
	log    *zap.Logger
}

// NewFirestore connects to Firestore using a service account credential file
func NewFirestore(ctx context.Context, projectID, credentialsPath string, log *zap.Logger) (*Firestore, error) {
	client, err := firestore.NewClient(ctx, projectID, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, err
	}
	log.Info("Firestore client initialized", zap.String("project_id", projectID))
	return &Firestore{client: client, log: log}, nil
}

// Close releases the underlying client connection
func (f *Firestore) Close() error {
	return f.client.Close()
}

// Get fetches a document by key
func (f *Firestore) Get(ctx context.Context, collection, id string) (map[string]any, bool) {
	snap, err := f.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) != codes.NotFound {
			f.log.Error("Failed to get document",
				zap.String("collection", collection),
				zap.String("document_id", id),
				zap.Error(err))
		}
		return nil, false
	}
	return snap.Data(), true
}

// Set creates or fully replaces a document
func (f *Firestore) Set(ctx context.Context, collection, id string, doc map[string]any) bool {
	if _, err := f.client.Collection(collection).Doc(id).Set(ctx, doc); err != nil {
		f.log.Error("Failed to set document",
			zap.String("collection", collection),
			zap.String("document_id", id),
			zap.Error(err))
		return false
	}
	f.log.Debug("Document written",
		zap.String("collection", collection),
		zap.String("document_id", id))
	return true
}

// Delete removes a document by key
func (f *Firestore) Delete(ctx context.Context, collection, id string) bool {
	if _, err := f.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		f.log.Error("Failed to delete document",
			zap.String("collection", collection),
			zap.String("document_id", id),
			zap.Error(err))
		return false
	}
	return true
}

// List returns every document in a collection keyed by ID
func (f *Firestore) List(ctx context.Context, collection string) (map[string]map[string]any, bool) {
	docs := make(map[string]map[string]any)
	iter := f.client.Collection(collection).Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			f.log.Error("Failed to list collection",
				zap.String("collection", collection),
				zap.Error(err))
			return nil, false
		}
		docs[snap.Ref.ID] = snap.Data()
	}
	return docs, true
}
