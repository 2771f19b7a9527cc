package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"MediLink/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client   *mongo.Client
	Database *mongo.Database
)

/*
* Connect to mongo with a bounded timeout
* Ping before handing the database out
* Keep the client and database in package vars for the services
 */
func Connect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.MongoURI())
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	Client = client
	Database = client.Database(config.MongoDatabase())
	log.Println("Connected to MongoDB")
	return nil
}

func Disconnect(ctx context.Context) {
	if Client == nil {
		return
	}
	if err := Client.Disconnect(ctx); err != nil {
		log.Println("Error while disconnecting MongoDB: ", err)
	}
}

func OpenCollections(name string) *mongo.Collection {
	return Database.Collection(name)
}

func FindOne(ctx context.Context, collection *mongo.Collection, filter interface{}, result interface{}) error {
	if filter == nil {
		filter = bson.M{}
	}
	return collection.FindOne(ctx, filter).Decode(result)
}

func FindAll(ctx context.Context, collection *mongo.Collection, filter interface{}, opts *options.FindOptions) ([]map[string]interface{}, error) {
	if filter == nil {
		filter = bson.M{}
	}
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = collection.Find(ctx, filter, opts)
	} else {
		cursor, err = collection.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []map[string]interface{}{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func CreateOne(ctx context.Context, collection *mongo.Collection, document interface{}) (*mongo.InsertOneResult, error) {
	return collection.InsertOne(ctx, document)
}

func UpdateOne(ctx context.Context, collection *mongo.Collection, filter interface{}, update interface{}) (*mongo.UpdateResult, error) {
	return collection.UpdateOne(ctx, filter, update)
}

func UpdateMany(ctx context.Context, collection *mongo.Collection, filter interface{}, update interface{}) (*mongo.UpdateResult, error) {
	return collection.UpdateMany(ctx, filter, update)
}

func DeleteOne(ctx context.Context, collection *mongo.Collection, filter interface{}) (*mongo.DeleteResult, error) {
	return collection.DeleteOne(ctx, filter)
}

func CountDocuments(ctx context.Context, collection *mongo.Collection, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return collection.CountDocuments(ctx, filter)
}

// WithTransaction runs fn inside a session so dependent writes either all
// land or none do.
func WithTransaction(ctx context.Context, fn func(sc mongo.SessionContext) (interface{}, error)) (interface{}, error) {
	session, err := Client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)
	return session.WithTransaction(ctx, fn)
}

/*
* Unique indexes back the one-profile-per-user and unique-email invariants
* Safe to call on every boot, mongo treats existing indexes as a no-op
 */
func EnsureIndexes(ctx context.Context) error {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}

	if _, err := Database.Collection("users").Indexes().CreateOne(ctx, unique("email")); err != nil {
		return err
	}
	for _, coll := range []string{"doctors", "patients", "admins"} {
		if _, err := Database.Collection(coll).Indexes().CreateOne(ctx, unique("userId")); err != nil {
			return err
		}
	}
	return nil
}
