package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"choiceLists/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const batchSize = 1000

type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDB(ctx context.Context, uri, dbName string) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Printf("Connected to MongoDB at %s", uri)

	return &MongoDB{
		Client:   client,
		Database: client.Database(dbName),
	}, nil
}

func (m *MongoDB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.Client.Disconnect(ctx)
}

// ReplaceList removes every stored option of listName and inserts rows in
// their place. It returns how many documents were removed.
func (m *MongoDB) ReplaceList(ctx context.Context, collectionName, listName string, rows []models.ChoiceRow) (int64, error) {
	collection := m.Database.Collection(collectionName)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	res, err := collection.DeleteMany(ctx, bson.M{"list_name": listName})
	if err != nil {
		return 0, fmt.Errorf("failed to clear choice list %s: %w", listName, err)
	}

	documents := make([]interface{}, 0, batchSize)
	for _, row := range rows {
		documents = append(documents, row)
		if len(documents) >= batchSize {
			if err := m.insertBatch(ctx, collection, documents); err != nil {
				return res.DeletedCount, err
			}
			documents = documents[:0]
		}
	}
	if len(documents) > 0 {
		if err := m.insertBatch(ctx, collection, documents); err != nil {
			return res.DeletedCount, err
		}
	}

	return res.DeletedCount, nil
}

// LoadRows returns the stored options ordered by list name and then by
// insertion. An empty listName loads every list.
func (m *MongoDB) LoadRows(ctx context.Context, collectionName, listName string) ([]models.ChoiceRow, error) {
	collection := m.Database.Collection(collectionName)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	filter := bson.M{}
	if listName != "" {
		filter["list_name"] = listName
	}
	opts := options.Find().SetSort(bson.D{{Key: "list_name", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find choice rows: %w", err)
	}
	defer cursor.Close(ctx)

	rows := []models.ChoiceRow{}
	for cursor.Next(ctx) {
		var row models.ChoiceRow
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode choice row: %w", err)
		}
		rows = append(rows, row)

		if len(rows)%batchSize == 0 {
			log.Printf("Loaded %d rows...", len(rows))
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return rows, nil
}

func (m *MongoDB) insertBatch(ctx context.Context, collection *mongo.Collection, documents []interface{}) error {
	_, err := collection.InsertMany(ctx, documents)
	if err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}

	log.Printf("Inserted batch of %d documents", len(documents))
	return nil
}
