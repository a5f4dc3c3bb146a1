// Package gridfs stores media objects in MongoDB GridFS, one GridFS bucket per media bucket.
package gridfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

const contentTypeKey = "contentType"

// Store reads and writes objects through GridFS.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	log    *slog.Logger
}

// Connect dials MongoDB, verifies the connection and returns a Store on database.
func Connect(ctx context.Context, uri, database string, timeout time.Duration, logger *slog.Logger) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("gridfs: connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("gridfs: ping: %w", err)
	}

	return &Store{
		client: client,
		db:     client.Database(database),
		log:    logger.With("adapter", "gridfs"),
	}, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping checks that MongoDB is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Put uploads body as bucket/key. Earlier revisions of key are removed afterwards.
func (s *Store) Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	b, err := s.bucket(ctx, bucket)
	if err != nil {
		return err
	}

	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: contentTypeKey, Value: contentType}})
	id, err := b.UploadFromStream(key, body, opts)
	if err != nil {
		return fmt.Errorf("gridfs: upload %s/%s: %w", bucket, key, err)
	}

	if err := s.deleteRevisions(ctx, b, key, id); err != nil {
		s.log.WarnContext(ctx, "stale revisions left", slog.String("bucket", bucket),
			slog.String("key", key), slog.String("error", err.Error()))
	}

	s.log.DebugContext(ctx, "object stored", slog.String("bucket", bucket), slog.String("key", key))
	return nil
}

// Open returns the latest revision of bucket/key or domain.ErrNotFound.
func (s *Store) Open(ctx context.Context, bucket, key string) (*domain.MediaObject, error) {
	b, err := s.bucket(ctx, bucket)
	if err != nil {
		return nil, err
	}

	stream, err := b.OpenDownloadStreamByName(key)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("gridfs: open %s/%s: %w", bucket, key, err)
	}

	file := stream.GetFile()
	contentType := "application/octet-stream"
	if file.Metadata != nil {
		if v, ok := file.Metadata.Lookup(contentTypeKey).StringValueOK(); ok && v != "" {
			contentType = v
		}
	}

	return &domain.MediaObject{
		Body:        stream,
		ContentType: contentType,
		Size:        file.Length,
		ModifiedAt:  file.UploadDate,
	}, nil
}

// Delete removes every revision of bucket/key. Missing objects are not an error.
func (s *Store) Delete(ctx context.Context, bucket, key string) error {
	b, err := s.bucket(ctx, bucket)
	if err != nil {
		return err
	}
	return s.deleteRevisions(ctx, b, key, nil)
}

// deleteRevisions removes files named key except keep.
func (s *Store) deleteRevisions(ctx context.Context, b *gridfs.Bucket, key string, keep any) error {
	cursor, err := b.FindContext(ctx, bson.D{{Key: "filename", Value: key}})
	if err != nil {
		return fmt.Errorf("gridfs: find %s: %w", key, err)
	}
	defer cursor.Close(ctx)

	var files []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &files); err != nil {
		return fmt.Errorf("gridfs: decode %s: %w", key, err)
	}

	for _, f := range files {
		if keep != nil && f.ID == keep {
			continue
		}
		if err := b.DeleteContext(ctx, f.ID); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
			return fmt.Errorf("gridfs: delete %s: %w", key, err)
		}
	}
	return nil
}

// bucket opens a per-call GridFS bucket handle bound to the context deadline.
func (s *Store) bucket(ctx context.Context, name string) (*gridfs.Bucket, error) {
	if name == "" {
		return nil, domain.NewValidationError("bucket", "required")
	}
	b, err := gridfs.NewBucket(s.db, options.GridFSBucket().SetName(name))
	if err != nil {
		return nil, fmt.Errorf("gridfs: bucket %s: %w", name, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := b.SetWriteDeadline(deadline); err != nil {
			return nil, fmt.Errorf("gridfs: set write deadline: %w", err)
		}
		if err := b.SetReadDeadline(deadline); err != nil {
			return nil, fmt.Errorf("gridfs: set read deadline: %w", err)
		}
	}
	return b, nil
}
